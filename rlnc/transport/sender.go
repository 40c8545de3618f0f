package transport

import (
	"context"
	"math"
	"sync/atomic"

	logging "github.com/ipfs/go-log/v2"

	"github.com/TheusHen/rlnc/rlnc"
)

var log = logging.Logger("rlnc/transport")

// SenderConfig tunes a Sender. The zero value gives 16 pieces per
// message, redundancy 2.0, no compression and crypto/rand coefficients.
type SenderConfig struct {
	// PieceCount is k, the number of original pieces per message.
	// Bounded by MaxPieceCount.
	PieceCount int
	// Redundancy is the ratio of coded pieces sent to k. A value of 2.0
	// sends 2k pieces, tolerating 50% loss in expectation.
	Redundancy float64
	// Compress enables LZ4 payload compression before encoding, skipped
	// per message when it does not shrink the payload.
	Compress bool
	// Source supplies coding coefficients.
	Source rlnc.CoefficientSource
}

// Sender turns payloads into streams of coded-piece datagrams. Each
// Send builds a fresh Encoder, so concurrent Sends only contend on the
// shared CoefficientSource; pass per-sender sources when that matters.
type Sender struct {
	conn   DatagramConn
	cfg    SenderConfig
	nextID atomic.Uint64
}

// NewSender creates a sender on conn.
func NewSender(conn DatagramConn, cfg SenderConfig) (*Sender, error) {
	if cfg.PieceCount == 0 {
		cfg.PieceCount = 16
	}
	if cfg.PieceCount < 1 || cfg.PieceCount > MaxPieceCount {
		return nil, rlnc.ErrInvalidPieceLength
	}
	if cfg.Redundancy <= 0 {
		cfg.Redundancy = 2.0
	}
	if cfg.Source == nil {
		cfg.Source = rlnc.NewCryptoSource()
	}
	return &Sender{conn: conn, cfg: cfg}, nil
}

// Send encodes payload and fires ceil(k * redundancy) coded-piece
// datagrams. It returns the message ID receivers will see. Send does
// not wait for any acknowledgment; there is none.
func (s *Sender) Send(ctx context.Context, payload []byte) (uint64, error) {
	id := s.nextID.Add(1)

	ft := FramePiece
	data := payload
	if s.cfg.Compress {
		if compressed, ok := compressPayload(payload); ok {
			data = compressed
			ft = FramePieceCompressed
		}
	}

	enc, err := rlnc.NewEncoder(data, s.cfg.PieceCount)
	if err != nil {
		return 0, err
	}

	pieces := int(math.Ceil(float64(s.cfg.PieceCount) * s.cfg.Redundancy))
	buf := make([]byte, enc.CodedPieceLen())
	for i := 0; i < pieces; i++ {
		if err := ctx.Err(); err != nil {
			return id, err
		}
		if err := enc.CodeWithBuffer(buf, s.cfg.Source); err != nil {
			return id, err
		}
		frame := Frame{
			Type:         ft,
			MessageID:    id,
			PieceCount:   enc.PieceCount(),
			PieceByteLen: enc.PieceByteLen(),
			Piece:        buf,
		}
		if err := s.conn.SendDatagram(frame.Encode()); err != nil {
			return id, err
		}
	}

	log.Debugw("sent message", "id", id, "payload", len(payload),
		"pieces", pieces, "pieceLen", enc.PieceByteLen(), "compressed", ft == FramePieceCompressed)
	return id, nil
}
