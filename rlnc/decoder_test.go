package rlnc

import (
	"bytes"
	mathrand "math/rand"
	"testing"
)

// decodeAll feeds coded pieces from enc into dec until decoding
// completes, failing the test if an unreasonable number of random pieces
// is consumed.
func decodeAll(t *testing.T, enc *Encoder, dec *Decoder, src CoefficientSource) {
	t.Helper()
	for i := 0; i < 64*enc.PieceCount(); i++ {
		if dec.IsDecoded() {
			return
		}
		err := dec.Decode(enc.Code(src))
		if err != nil && err != ErrPieceNotUseful {
			t.Fatalf("Decode: %v", err)
		}
	}
	if !dec.IsDecoded() {
		t.Fatalf("decoder did not complete")
	}
}

func TestDecoderRoundTrip(t *testing.T) {
	payload := []byte("any k independent pieces reconstruct the payload")

	enc, err := NewEncoder(payload, 8)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	dec, err := NewDecoder(enc.PieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	decodeAll(t, enc, dec, NewPRNGSource(11))

	if got := dec.UsefulPieceCount(); got != 8 {
		t.Fatalf("UsefulPieceCount = %d, want 8", got)
	}
	if got := dec.RemainingPieceCount(); got != 0 {
		t.Fatalf("RemainingPieceCount = %d, want 0", got)
	}

	decoded, err := dec.DecodedData()
	if err != nil {
		t.Fatalf("DecodedData: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatalf("decoded payload mismatch: got %q", decoded)
	}
}

func TestDecoderOrderIndependence(t *testing.T) {
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	enc, err := NewEncoder(payload, 10)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	// Generate a redundant batch, then feed it shuffled and reversed.
	src := NewPRNGSource(3)
	batch := make([]CodedPiece, 30)
	for i := range batch {
		batch[i] = enc.Code(src)
	}

	orders := [][]CodedPiece{
		batch,
		reversed(batch),
		shuffled(batch, 99),
	}

	for n, pieces := range orders {
		dec, err := NewDecoder(enc.PieceByteLen(), enc.PieceCount())
		if err != nil {
			t.Fatalf("NewDecoder: %v", err)
		}
		for _, p := range pieces {
			if dec.IsDecoded() {
				break
			}
			err := dec.Decode(p)
			if err != nil && err != ErrPieceNotUseful {
				t.Fatalf("order %d: Decode: %v", n, err)
			}
		}
		decoded, err := dec.DecodedData()
		if err != nil {
			t.Fatalf("order %d: DecodedData: %v", n, err)
		}
		if !bytes.Equal(decoded, payload) {
			t.Fatalf("order %d: decoded payload mismatch", n)
		}
	}
}

func reversed(pieces []CodedPiece) []CodedPiece {
	out := make([]CodedPiece, len(pieces))
	for i, p := range pieces {
		out[len(pieces)-1-i] = p
	}
	return out
}

func shuffled(pieces []CodedPiece, seed int64) []CodedPiece {
	out := make([]CodedPiece, len(pieces))
	copy(out, pieces)
	r := mathrand.New(mathrand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestDecoderRejectsDuplicate(t *testing.T) {
	enc, err := NewEncoder([]byte("duplicate piece carries no rank"), 4)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	dec, err := NewDecoder(enc.PieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	piece := enc.Code(NewPRNGSource(5))
	if err := dec.Decode(piece); err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	if err := dec.Decode(piece); err != ErrPieceNotUseful {
		t.Fatalf("expected ErrPieceNotUseful on duplicate, got %v", err)
	}
	if got := dec.UsefulPieceCount(); got != 1 {
		t.Fatalf("rank changed on rejected piece: %d", got)
	}
}

func TestDecoderRejectsZeroPiece(t *testing.T) {
	dec, err := NewDecoder(8, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if err := dec.Decode(make([]byte, dec.CodedPieceLen())); err != ErrPieceNotUseful {
		t.Fatalf("expected ErrPieceNotUseful for all-zero piece, got %v", err)
	}
}

func TestDecoderLengthValidation(t *testing.T) {
	dec, err := NewDecoder(8, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if err := dec.Decode(make([]byte, dec.CodedPieceLen()+1)); err != ErrInvalidPieceLength {
		t.Fatalf("expected ErrInvalidPieceLength, got %v", err)
	}
}

func TestDecoderPostDecodeIdempotence(t *testing.T) {
	payload := []byte("terminal state is read-only")

	enc, err := NewEncoder(payload, 4)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	dec, err := NewDecoder(enc.PieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}

	decodeAll(t, enc, dec, NewPRNGSource(17))

	first, err := dec.DecodedData()
	if err != nil {
		t.Fatalf("DecodedData: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := dec.Decode(enc.Code(NewPRNGSource(int64(i)))); err != ErrAllPiecesReceived {
			t.Fatalf("expected ErrAllPiecesReceived, got %v", err)
		}
	}

	again, err := dec.DecodedData()
	if err != nil {
		t.Fatalf("DecodedData after extra pieces: %v", err)
	}
	if !bytes.Equal(first, again) {
		t.Fatalf("decoded payload changed after completion")
	}
}

func TestDecodedDataBeforeCompletion(t *testing.T) {
	dec, err := NewDecoder(8, 4)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if _, err := dec.DecodedData(); err != ErrNotDecodedYet {
		t.Fatalf("expected ErrNotDecodedYet, got %v", err)
	}
}

func TestDecoderWithoutPaddingRoundTrip(t *testing.T) {
	payload := []byte("16 divisible byte") // 17 bytes, not divisible by 4
	if _, err := NewEncoderWithoutPadding(payload, 4); err != ErrInvalidPieceLength {
		t.Fatalf("expected ErrInvalidPieceLength, got %v", err)
	}

	payload = payload[:16]
	enc, err := NewEncoderWithoutPadding(payload, 4)
	if err != nil {
		t.Fatalf("NewEncoderWithoutPadding: %v", err)
	}
	dec, err := NewDecoderWithoutPadding(enc.PieceByteLen(), enc.PieceCount())
	if err != nil {
		t.Fatalf("NewDecoderWithoutPadding: %v", err)
	}

	decodeAll(t, enc, dec, NewPRNGSource(23))

	decoded, err := dec.DecodedData()
	if err != nil {
		t.Fatalf("DecodedData: %v", err)
	}
	if !bytes.Equal(decoded, payload) {
		t.Fatalf("decoded payload mismatch: got %q", decoded)
	}
}

func BenchmarkDecoderDecode(b *testing.B) {
	payload := make([]byte, 1<<20)
	for i := range payload {
		payload[i] = byte(i)
	}
	enc, err := NewEncoder(payload, 16)
	if err != nil {
		b.Fatalf("NewEncoder: %v", err)
	}

	src := NewPRNGSource(1)
	pieces := make([]CodedPiece, 32)
	for i := range pieces {
		pieces[i] = enc.Code(src)
	}

	b.SetBytes(int64(len(payload)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		dec, _ := NewDecoder(enc.PieceByteLen(), enc.PieceCount())
		for _, p := range pieces {
			if dec.IsDecoded() {
				break
			}
			_ = dec.Decode(p)
		}
	}
}
