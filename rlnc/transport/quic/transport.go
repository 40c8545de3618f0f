// Package quic provides a DatagramConn over QUIC unreliable datagrams
// (RFC 9221). Datagrams ride the QUIC handshake's encryption but are
// never retransmitted, which is exactly the delivery model coded pieces
// want: losing one costs a datagram of redundancy, not a round trip.
package quic

import (
	"context"
	"net"

	q "github.com/quic-go/quic-go"
)

// Listener accepts QUIC connections with datagram support enabled.
type Listener struct {
	inner *q.Listener
}

func Listen(addr string) (*Listener, error) {
	tlsConf, err := NewServerTLSConfig()
	if err != nil {
		return nil, err
	}
	ln, err := q.ListenAddr(addr, tlsConf, &q.Config{EnableDatagrams: true})
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln}, nil
}

// Accept returns the next connection. The *q.Conn satisfies
// transport.DatagramConn directly.
func (l *Listener) Accept(ctx context.Context) (*q.Conn, error) {
	return l.inner.Accept(ctx)
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) Close() error { return l.inner.Close() }

// Dial connects to addr with datagram support enabled.
func Dial(ctx context.Context, addr string) (*q.Conn, error) {
	tlsConf, err := NewClientTLSConfig()
	if err != nil {
		return nil, err
	}
	return q.DialAddr(ctx, addr, tlsConf, &q.Config{EnableDatagrams: true})
}
