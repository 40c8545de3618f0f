package rlnc

import (
	"bytes"
	"testing"
)

func TestSplitJoinPadded(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")

	pieces, err := Split(payload, 5, true)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(pieces) != 5 {
		t.Fatalf("expected 5 pieces, got %d", len(pieces))
	}
	for i, p := range pieces {
		if len(p) != len(pieces[0]) {
			t.Fatalf("piece %d has length %d, want %d", i, len(p), len(pieces[0]))
		}
	}

	joined, err := Join(pieces, true)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !bytes.Equal(joined, payload) {
		t.Fatalf("round-trip mismatch: got %q", joined)
	}
}

func TestSplitWithoutPaddingRequiresDivisibility(t *testing.T) {
	if _, err := Split([]byte("12345"), 4, false); err != ErrInvalidPieceLength {
		t.Fatalf("expected ErrInvalidPieceLength, got %v", err)
	}

	pieces, err := Split([]byte("12345678"), 4, false)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	joined, err := Join(pieces, false)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if string(joined) != "12345678" {
		t.Fatalf("round-trip mismatch: got %q", joined)
	}
}

func TestSplitEmptyPayloadPadded(t *testing.T) {
	pieces, err := Split(nil, 3, true)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	joined, err := Join(pieces, true)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(joined) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(joined))
	}
}

func TestJoinRejectsMalformedTrailer(t *testing.T) {
	pieces, err := Split([]byte("hello world"), 4, true)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	// Corrupt the trailer so it records a length beyond the padded buffer.
	last := pieces[len(pieces)-1]
	for i := len(last) - trailerLen; i < len(last); i++ {
		last[i] = 0xff
	}

	if _, err := Join(pieces, true); err != ErrInvalidDecodedData {
		t.Fatalf("expected ErrInvalidDecodedData, got %v", err)
	}
}
