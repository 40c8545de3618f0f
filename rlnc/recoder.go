package rlnc

import "github.com/TheusHen/rlnc/rlnc/galois"

// Recoder generates fresh coded pieces from coded pieces it has observed,
// without decoding. Any linear combination of valid coded pieces is
// itself a valid coded piece in the same coding space, so a relay node
// can add redundancy for downstream receivers while holding at most k
// raw pieces and never touching the payload.
//
// The pool is kept exactly as received, unreduced. Pool mutation via
// AddPiece must be serialized against concurrent Recode calls.
type Recoder struct {
	pool          [][]byte
	codedPieceLen int
	pieceCount    int
	next          int
}

// NewRecoder builds a recoder from received, a concatenation of one or
// more raw coded pieces of codedPieceLen bytes each. The count must not
// exceed pieceCount.
func NewRecoder(received []byte, codedPieceLen, pieceCount int) (*Recoder, error) {
	if codedPieceLen < 1 || pieceCount < 1 {
		return nil, ErrInvalidPieceLength
	}
	if len(received) == 0 || len(received)%codedPieceLen != 0 {
		return nil, ErrInvalidPieceLength
	}
	n := len(received) / codedPieceLen
	if n > pieceCount {
		return nil, ErrInvalidPieceLength
	}

	pool := make([][]byte, 0, pieceCount)
	for i := 0; i < n; i++ {
		p := make([]byte, codedPieceLen)
		copy(p, received[i*codedPieceLen:(i+1)*codedPieceLen])
		pool = append(pool, p)
	}
	return &Recoder{
		pool:          pool,
		codedPieceLen: codedPieceLen,
		pieceCount:    pieceCount,
	}, nil
}

// PoolSize returns the number of pooled pieces.
func (r *Recoder) PoolSize() int { return len(r.pool) }

// CodedPieceLen returns the wire length of the pieces this recoder pools
// and emits.
func (r *Recoder) CodedPieceLen() int { return r.codedPieceLen }

// AddPiece appends an observed coded piece to the pool. Once the pool
// holds pieceCount entries, the oldest entry is replaced, so a
// long-lived relay recodes over the freshest k observations.
func (r *Recoder) AddPiece(piece CodedPiece) error {
	if len(piece) != r.codedPieceLen {
		return ErrInvalidPieceLength
	}
	p := make([]byte, r.codedPieceLen)
	copy(p, piece)

	if len(r.pool) < r.pieceCount {
		r.pool = append(r.pool, p)
		return nil
	}
	r.pool[r.next] = p
	r.next = (r.next + 1) % r.pieceCount
	return nil
}

// Recode draws one weight per pooled piece from src and returns their
// field-weighted sum, coefficient prefix and data suffix combined
// byte-for-byte exactly as Encoder.Code combines original pieces.
func (r *Recoder) Recode(src CoefficientSource) CodedPiece {
	out := make([]byte, r.codedPieceLen)
	for _, p := range r.pool {
		galois.MulAdd(out, p, src.Element())
	}
	return out
}
