package rlnc

import "github.com/TheusHen/rlnc/rlnc/galois"

// Encoder produces coded pieces as random linear combinations of the k
// original pieces of a payload. It is immutable after construction:
// Code never mutates the encoder, so a single Encoder may serve
// concurrent callers as long as each call brings its own
// CoefficientSource and output buffer.
type Encoder struct {
	pieces       [][]byte
	pieceCount   int
	pieceByteLen int
}

// NewEncoder splits payload into pieceCount pieces, padding with a
// length trailer so any payload length is accepted.
func NewEncoder(payload []byte, pieceCount int) (*Encoder, error) {
	return newEncoder(payload, pieceCount, true)
}

// NewEncoderWithoutPadding splits payload into pieceCount pieces with no
// trailer; the payload length must divide evenly by pieceCount or
// ErrInvalidPieceLength is returned.
func NewEncoderWithoutPadding(payload []byte, pieceCount int) (*Encoder, error) {
	return newEncoder(payload, pieceCount, false)
}

func newEncoder(payload []byte, pieceCount int, pad bool) (*Encoder, error) {
	if pieceCount < 1 {
		return nil, ErrInvalidPieceLength
	}
	pieces, err := Split(payload, pieceCount, pad)
	if err != nil {
		return nil, err
	}
	return &Encoder{
		pieces:       pieces,
		pieceCount:   pieceCount,
		pieceByteLen: len(pieces[0]),
	}, nil
}

// PieceCount returns k, the number of original pieces.
func (e *Encoder) PieceCount() int { return e.pieceCount }

// PieceByteLen returns L, the length of each original piece.
func (e *Encoder) PieceByteLen() int { return e.pieceByteLen }

// CodedPieceLen returns the full wire length of one coded piece, k + L.
func (e *Encoder) CodedPieceLen() int { return e.pieceCount + e.pieceByteLen }

// Code draws k coefficients from src and returns a freshly allocated
// coded piece. The all-zero coefficient draw is not excluded: it yields
// a piece of rank zero that any decoder rejects as not useful, which is
// astronomically unlikely and harmless.
func (e *Encoder) Code(src CoefficientSource) CodedPiece {
	out := make([]byte, e.CodedPieceLen())
	e.code(out, src)
	return out
}

// CodeWithBuffer is Code writing into a caller-supplied buffer of
// exactly k + L bytes.
func (e *Encoder) CodeWithBuffer(out []byte, src CoefficientSource) error {
	if len(out) != e.CodedPieceLen() {
		return ErrInvalidPieceLength
	}
	e.code(out, src)
	return nil
}

func (e *Encoder) code(out []byte, src CoefficientSource) {
	coeffs := out[:e.pieceCount]
	data := out[e.pieceCount:]
	for i := range data {
		data[i] = 0
	}
	for i := range coeffs {
		coeffs[i] = src.Element()
		galois.MulAdd(data, e.pieces[i], coeffs[i])
	}
}
