package transport

import (
	"context"

	"github.com/TheusHen/rlnc/rlnc"
)

// RelayConfig tunes a Relay. The zero value emits one recoded piece per
// observed piece using crypto/rand coefficients.
type RelayConfig struct {
	// Fanout is the number of recoded pieces emitted per observed piece.
	Fanout int
	// Source supplies recoding weights.
	Source rlnc.CoefficientSource
}

// Relay forwards coded pieces from an upstream conn to a downstream
// conn, re-randomizing them through a Recoder instead of copying. It
// never decodes: the pooled pieces stay raw, and every emitted piece is
// a fresh combination of what has been observed so far, so downstream
// receivers benefit even when the relay itself heard redundant pieces.
type Relay struct {
	in, out  DatagramConn
	cfg      RelayConfig
	recoders map[uint64]*rlnc.Recoder
}

// NewRelay creates a relay between two conns.
func NewRelay(in, out DatagramConn, cfg RelayConfig) *Relay {
	if cfg.Fanout <= 0 {
		cfg.Fanout = 1
	}
	if cfg.Source == nil {
		cfg.Source = rlnc.NewCryptoSource()
	}
	return &Relay{in: in, out: out, cfg: cfg, recoders: make(map[uint64]*rlnc.Recoder)}
}

// Run relays until ctx is cancelled or a conn fails.
func (r *Relay) Run(ctx context.Context) error {
	for {
		data, err := r.in.ReceiveDatagram(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		frame, err := DecodeFrame(data)
		if err != nil {
			log.Debugw("relay dropping malformed datagram", "err", err)
			continue
		}

		rec, ok := r.recoders[frame.MessageID]
		if !ok {
			rec, err = rlnc.NewRecoder(frame.Piece, len(frame.Piece), frame.PieceCount)
			if err != nil {
				log.Debugw("relay dropping frame", "id", frame.MessageID, "err", err)
				continue
			}
			r.recoders[frame.MessageID] = rec
		} else {
			if err := rec.AddPiece(frame.Piece); err != nil {
				log.Debugw("relay dropping mis-sized piece", "id", frame.MessageID, "err", err)
				continue
			}
		}

		for i := 0; i < r.cfg.Fanout; i++ {
			recoded := frame
			recoded.Piece = rec.Recode(r.cfg.Source)
			if err := r.out.SendDatagram(recoded.Encode()); err != nil {
				return err
			}
		}
	}
}
