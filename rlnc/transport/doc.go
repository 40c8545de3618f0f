// Package transport moves coded pieces over unreliable datagram
// channels.
//
// Each datagram carries one self-describing piece frame: message ID,
// coding geometry and a coded piece. Loss, duplication and reordering
// need no handling beyond what the rlnc decoder already provides: the
// Sender fires redundant coded pieces and the Receiver opportunistically
// completes whenever rank is reached. A Relay recodes observed pieces
// for downstream receivers without decoding.
//
// The package speaks to any DatagramConn; the quic subpackage provides
// one over QUIC datagrams, and Pipe provides an in-memory lossy pair
// for tests and demos. Payloads can be LZ4-compressed before encoding.
package transport
