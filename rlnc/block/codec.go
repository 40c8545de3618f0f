package block

import (
	"errors"

	"github.com/klauspost/reedsolomon"

	"github.com/TheusHen/rlnc/rlnc"
)

var (
	// ErrInvalidConfig reports a non-positive data or parity shard count.
	ErrInvalidConfig = errors.New("block: invalid data/parity configuration")
	// ErrTooManyLost reports more missing shards than parity can recover.
	ErrTooManyLost = errors.New("block: too many shards lost, cannot recover")
	// ErrShardCountMismatch reports a shard slice of the wrong length.
	ErrShardCountMismatch = errors.New("block: shard count does not match configuration")
)

// Codec is a fixed-rate erasure codec over GF(256): dataShards original
// pieces plus parityShards redundant pieces, any dataShards of which
// reconstruct the payload.
type Codec struct {
	enc          reedsolomon.Encoder
	dataShards   int
	parityShards int
}

// NewCodec creates a codec with the given data/parity split.
func NewCodec(dataShards, parityShards int) (*Codec, error) {
	if dataShards <= 0 || parityShards <= 0 {
		return nil, ErrInvalidConfig
	}
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	return &Codec{enc: enc, dataShards: dataShards, parityShards: parityShards}, nil
}

// DataShards returns the number of data shards.
func (c *Codec) DataShards() int { return c.dataShards }

// ParityShards returns the number of parity shards.
func (c *Codec) ParityShards() int { return c.parityShards }

// TotalShards returns dataShards + parityShards.
func (c *Codec) TotalShards() int { return c.dataShards + c.parityShards }

// Encode pads payload with the rlnc length trailer, splits it into
// dataShards pieces and computes parityShards parity pieces. The result
// holds TotalShards equal-length shards, data first.
func (c *Codec) Encode(payload []byte) ([][]byte, error) {
	pieces, err := rlnc.Split(payload, c.dataShards, true)
	if err != nil {
		return nil, err
	}

	shardLen := len(pieces[0])
	shards := make([][]byte, c.TotalShards())
	for i := range shards {
		if i < c.dataShards {
			shards[i] = pieces[i]
		} else {
			shards[i] = make([]byte, shardLen)
		}
	}
	if err := c.enc.Encode(shards); err != nil {
		return nil, err
	}
	return shards, nil
}

// Reconstruct fills in missing shards in place; missing shards are nil
// entries. Fails with ErrTooManyLost when fewer than dataShards shards
// survive.
func (c *Codec) Reconstruct(shards [][]byte) error {
	if len(shards) != c.TotalShards() {
		return ErrShardCountMismatch
	}
	if err := c.enc.Reconstruct(shards); err != nil {
		if errors.Is(err, reedsolomon.ErrTooFewShards) {
			return ErrTooManyLost
		}
		return err
	}
	return nil
}

// Verify checks parity consistency over a full shard set.
func (c *Codec) Verify(shards [][]byte) (bool, error) {
	if len(shards) != c.TotalShards() {
		return false, ErrShardCountMismatch
	}
	return c.enc.Verify(shards)
}

// Join reassembles the payload from the data shards, stripping the
// padding trailer. Shards must be complete; run Reconstruct first after
// losses.
func (c *Codec) Join(shards [][]byte) ([]byte, error) {
	if len(shards) < c.dataShards {
		return nil, ErrShardCountMismatch
	}
	return rlnc.Join(shards[:c.dataShards], true)
}
