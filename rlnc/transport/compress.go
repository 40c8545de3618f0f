package transport

import (
	"encoding/binary"
	"errors"

	"github.com/pierrec/lz4/v4"
)

var ErrInvalidCompressedPayload = errors.New("transport: invalid compressed payload")

// compressPayload block-compresses data and prefixes the original
// length, so the receiver can size the decompression buffer after
// decoding. Returns ok=false when compression does not shrink the
// payload; the caller then sends it plain.
func compressPayload(data []byte) ([]byte, bool) {
	if len(data) == 0 {
		return data, false
	}

	buf := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	var c lz4.Compressor
	n, err := c.CompressBlock(data, buf[4:])
	if err != nil || n == 0 || 4+n >= len(data) {
		return data, false
	}
	binary.BigEndian.PutUint32(buf, uint32(len(data)))
	return buf[:4+n], true
}

// decompressPayload reverses compressPayload.
func decompressPayload(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, ErrInvalidCompressedPayload
	}
	origLen := binary.BigEndian.Uint32(data)
	out := make([]byte, origLen)
	n, err := lz4.UncompressBlock(data[4:], out)
	if err != nil || n != int(origLen) {
		return nil, ErrInvalidCompressedPayload
	}
	return out, nil
}
