package rlnc

import "errors"

var (
	// ErrInvalidPieceLength reports a buffer whose length does not match
	// the fixed size expected at that point (construction, Decode, or a
	// caller-supplied output buffer).
	ErrInvalidPieceLength = errors.New("rlnc: piece length does not match expected size")

	// ErrPieceNotUseful reports a coded piece that reduced to the zero
	// coefficient vector: it is linearly dependent on pieces the decoder
	// already holds. Routine on lossy channels; feed the next piece.
	ErrPieceNotUseful = errors.New("rlnc: piece adds no rank")

	// ErrAllPiecesReceived reports a Decode call after decoding already
	// completed. The piece is ignored and decoder state is unchanged.
	ErrAllPiecesReceived = errors.New("rlnc: decoding already complete")

	// ErrNotDecodedYet reports a DecodedData call before rank reached the
	// piece count.
	ErrNotDecodedYet = errors.New("rlnc: not all pieces received yet")

	// ErrInvalidDecodedData reports a padding trailer that is inconsistent
	// after a full decode, e.g. a recorded length exceeding the padded
	// buffer.
	ErrInvalidDecodedData = errors.New("rlnc: decoded data has malformed padding trailer")
)
