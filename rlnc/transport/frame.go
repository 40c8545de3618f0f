package transport

import (
	"encoding/binary"
	"errors"
)

var (
	ErrFrameTooShort    = errors.New("transport: frame shorter than header")
	ErrFrameTruncated   = errors.New("transport: frame payload truncated")
	ErrUnknownFrameType = errors.New("transport: unknown frame type")
)

// FrameType tags the payload encoding carried by a piece frame.
type FrameType uint8

const (
	// FramePiece carries a coded piece of a plain payload.
	FramePiece FrameType = 1
	// FramePieceCompressed carries a coded piece of an LZ4-compressed
	// payload; the receiver decompresses after full decode.
	FramePieceCompressed FrameType = 2
)

func (t FrameType) String() string {
	switch t {
	case FramePiece:
		return "PIECE"
	case FramePieceCompressed:
		return "PIECE_COMPRESSED"
	default:
		return "UNKNOWN"
	}
}

// frameHeaderLen is the fixed prefix of every piece frame:
//
//	1 byte:  frame type
//	8 bytes: message ID (big endian)
//	1 byte:  piece count k
//	4 bytes: piece byte length L (big endian)
//
// followed by the k+L byte coded piece.
const frameHeaderLen = 1 + 8 + 1 + 4

// MaxPieceCount is the largest k a frame can describe.
const MaxPieceCount = 255

// Frame is one datagram's worth of coded piece plus the geometry a
// receiver needs to route and decode it. All pieces of one logical
// message share the same ID, k and L.
type Frame struct {
	Type         FrameType
	MessageID    uint64
	PieceCount   int
	PieceByteLen int
	Piece        []byte
}

// Encode serializes the frame for datagram transmission.
func (f Frame) Encode() []byte {
	buf := make([]byte, frameHeaderLen+len(f.Piece))
	buf[0] = byte(f.Type)
	binary.BigEndian.PutUint64(buf[1:], f.MessageID)
	buf[9] = byte(f.PieceCount)
	binary.BigEndian.PutUint32(buf[10:], uint32(f.PieceByteLen))
	copy(buf[frameHeaderLen:], f.Piece)
	return buf
}

// DecodeFrame parses a received datagram. A frame whose declared
// geometry disagrees with its length is rejected.
func DecodeFrame(data []byte) (Frame, error) {
	if len(data) < frameHeaderLen {
		return Frame{}, ErrFrameTooShort
	}

	ft := FrameType(data[0])
	if ft != FramePiece && ft != FramePieceCompressed {
		return Frame{}, ErrUnknownFrameType
	}

	f := Frame{
		Type:         ft,
		MessageID:    binary.BigEndian.Uint64(data[1:]),
		PieceCount:   int(data[9]),
		PieceByteLen: int(binary.BigEndian.Uint32(data[10:])),
	}
	if len(data) != frameHeaderLen+f.PieceCount+f.PieceByteLen {
		return Frame{}, ErrFrameTruncated
	}
	f.Piece = data[frameHeaderLen:]
	return f, nil
}
