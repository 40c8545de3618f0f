package rlnc

import "encoding/binary"

// trailerLen is the width of the padding trailer: a big-endian uint32
// recording the original payload length, stored in the last four bytes
// of the padded buffer.
const trailerLen = 4

// paddedLen returns the smallest multiple of pieceCount that holds the
// payload plus the trailer.
func paddedLen(payloadLen, pieceCount int) int {
	total := payloadLen + trailerLen
	if rem := total % pieceCount; rem != 0 {
		total += pieceCount - rem
	}
	return total
}

// Split partitions data into pieceCount equal pieces. If pad is set the
// payload is zero-extended and a length trailer appended so any payload
// length divides evenly; otherwise the length must already be divisible
// by pieceCount.
func Split(data []byte, pieceCount int, pad bool) ([][]byte, error) {
	var buf []byte
	if pad {
		total := paddedLen(len(data), pieceCount)
		buf = make([]byte, total)
		copy(buf, data)
		binary.BigEndian.PutUint32(buf[total-trailerLen:], uint32(len(data)))
	} else {
		if len(data) == 0 || len(data)%pieceCount != 0 {
			return nil, ErrInvalidPieceLength
		}
		// Copy so the pieces never alias the caller's payload; an
		// Encoder must stay immutable even when the caller reuses the
		// buffer it encoded from.
		buf = append([]byte(nil), data...)
	}

	pieceLen := len(buf) / pieceCount
	pieces := make([][]byte, pieceCount)
	for i := range pieces {
		pieces[i] = buf[i*pieceLen : (i+1)*pieceLen]
	}
	return pieces, nil
}

// Join concatenates pieces in index order and, if pad is set, strips the
// padding using the recorded trailer length.
func Join(pieces [][]byte, pad bool) ([]byte, error) {
	total := 0
	for _, p := range pieces {
		total += len(p)
	}
	buf := make([]byte, 0, total)
	for _, p := range pieces {
		buf = append(buf, p...)
	}
	if !pad {
		return buf, nil
	}

	if total < trailerLen {
		return nil, ErrInvalidDecodedData
	}
	payloadLen := binary.BigEndian.Uint32(buf[total-trailerLen:])
	if int(payloadLen) > total-trailerLen {
		return nil, ErrInvalidDecodedData
	}
	return buf[:payloadLen], nil
}

// CodedPiece is a view over the flat wire representation of one coded
// piece: pieceCount coefficient bytes followed by the combined data
// bytes, k + L in total. It is the unit transmitted on the channel.
type CodedPiece []byte

// Coefficients returns the coefficient vector prefix.
func (p CodedPiece) Coefficients(pieceCount int) []byte { return p[:pieceCount] }

// Data returns the combined data suffix.
func (p CodedPiece) Data(pieceCount int) []byte { return p[pieceCount:] }
