package transport

import (
	"context"
	"errors"
	mathrand "math/rand"
	"sync"
)

// ErrConnClosed reports use of a closed in-memory conn.
var ErrConnClosed = errors.New("transport: conn closed")

// DatagramConn is the unreliable channel the transport speaks to. A
// datagram may be lost, duplicated or reordered in flight; it is never
// corrupted or split. *quic.Conn satisfies this interface directly.
type DatagramConn interface {
	SendDatagram(payload []byte) error
	ReceiveDatagram(ctx context.Context) ([]byte, error)
}

// Pipe returns two connected in-memory DatagramConns. Datagrams sent on
// one side arrive on the other, except that each is independently
// dropped with probability loss, decided by a generator seeded with
// seed. Intended for tests and demos.
func Pipe(loss float64, seed int64) (*PipeConn, *PipeConn) {
	return PipeQueue(loss, seed, 0)
}

// PipeQueue is Pipe with an explicit receive queue capacity per side;
// zero means 1024. A datagram arriving at a full queue is dropped like
// any other loss, so a zero-loss pipe is only lossless while its queue
// keeps up: size it to the burst when that guarantee matters.
func PipeQueue(loss float64, seed int64, queue int) (*PipeConn, *PipeConn) {
	if queue <= 0 {
		queue = 1024
	}
	var mu sync.Mutex
	r := mathrand.New(mathrand.NewSource(seed))
	drop := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return r.Float64() < loss
	}
	a := &PipeConn{ch: make(chan []byte, queue), drop: drop}
	b := &PipeConn{ch: make(chan []byte, queue), drop: drop}
	a.peer, b.peer = b, a
	return a, b
}

// PipeConn is one end of an in-memory lossy datagram pair.
type PipeConn struct {
	peer   *PipeConn
	ch     chan []byte
	drop   func() bool
	mu     sync.Mutex
	closed bool
}

func (c *PipeConn) SendDatagram(payload []byte) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnClosed
	}
	dropped := c.drop()
	c.mu.Unlock()

	if dropped {
		return nil
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	select {
	case c.peer.ch <- buf:
		return nil
	default:
		// Receiver queue full behaves like network loss.
		return nil
	}
}

func (c *PipeConn) ReceiveDatagram(ctx context.Context) ([]byte, error) {
	select {
	case buf := <-c.ch:
		return buf, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the conn; in-flight datagrams already queued on the peer
// remain receivable.
func (c *PipeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
