package transport

import (
	"context"
	"errors"

	"github.com/TheusHen/rlnc/rlnc"
)

// Message is a fully reconstructed payload delivered by a Receiver.
type Message struct {
	ID      uint64
	Payload []byte
}

// Receiver reassembles messages from coded-piece datagrams. It keeps
// one Decoder per in-flight message ID and delivers each message once,
// when its decoder reaches full rank. Pieces that arrive late, twice or
// for completed messages are routine and dropped silently.
//
// Per-message state is bounded: once more than maxTrackedMessages IDs
// have been seen, the oldest is evicted. Pieces of an evicted message
// that keep arriving start a fresh decoder, so a message can in
// principle be delivered a second time if k independent pieces of it
// arrive after 1024 newer messages; consumers needing strict
// exactly-once must deduplicate on message ID.
type Receiver struct {
	conn DatagramConn
	out  chan Message

	// Run is the only goroutine touching these; no lock needed.
	states     map[uint64]*decodeState
	order      []uint64
	maxTracked int
}

// maxTrackedMessages bounds the per-message decoder map.
const maxTrackedMessages = 1024

type decodeState struct {
	dec        *rlnc.Decoder
	compressed bool
	delivered  bool
}

// NewReceiver creates a receiver on conn. buffer is the capacity of the
// delivery channel; zero means 16.
func NewReceiver(conn DatagramConn, buffer int) *Receiver {
	if buffer <= 0 {
		buffer = 16
	}
	return &Receiver{
		conn:       conn,
		out:        make(chan Message, buffer),
		states:     make(map[uint64]*decodeState),
		maxTracked: maxTrackedMessages,
	}
}

// Messages returns the channel reconstructed payloads are delivered on.
func (r *Receiver) Messages() <-chan Message { return r.out }

// Run receives datagrams until ctx is cancelled or the conn fails.
// Malformed datagrams are counted and dropped, never fatal.
func (r *Receiver) Run(ctx context.Context) error {
	for {
		data, err := r.conn.ReceiveDatagram(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		frame, err := DecodeFrame(data)
		if err != nil {
			log.Debugw("dropping malformed datagram", "err", err, "len", len(data))
			continue
		}
		if err := r.ingest(ctx, frame); err != nil {
			return err
		}
	}
}

func (r *Receiver) ingest(ctx context.Context, frame Frame) error {
	st, ok := r.states[frame.MessageID]
	if !ok {
		dec, err := rlnc.NewDecoder(frame.PieceByteLen, frame.PieceCount)
		if err != nil {
			log.Debugw("dropping frame with invalid geometry",
				"id", frame.MessageID, "k", frame.PieceCount, "pieceLen", frame.PieceByteLen)
			return nil
		}
		st = &decodeState{dec: dec, compressed: frame.Type == FramePieceCompressed}
		r.states[frame.MessageID] = st
		r.order = append(r.order, frame.MessageID)
		for len(r.states) > r.maxTracked {
			delete(r.states, r.order[0])
			r.order = r.order[1:]
		}
	}

	switch err := st.dec.Decode(frame.Piece); {
	case err == nil:
	case errors.Is(err, rlnc.ErrPieceNotUseful), errors.Is(err, rlnc.ErrAllPiecesReceived):
		// Redundant piece; expected on any lossy channel.
		return nil
	default:
		log.Debugw("dropping undecodable piece", "id", frame.MessageID, "err", err)
		return nil
	}

	if !st.dec.IsDecoded() || st.delivered {
		return nil
	}

	payload, err := st.dec.DecodedData()
	if err != nil {
		log.Warnw("discarding message with corrupt padding", "id", frame.MessageID, "err", err)
		delete(r.states, frame.MessageID)
		return nil
	}
	if st.compressed {
		payload, err = decompressPayload(payload)
		if err != nil {
			log.Warnw("discarding message with corrupt compression", "id", frame.MessageID, "err", err)
			delete(r.states, frame.MessageID)
			return nil
		}
	}

	st.delivered = true
	log.Debugw("message reconstructed", "id", frame.MessageID, "payload", len(payload))
	select {
	case r.out <- Message{ID: frame.MessageID, Payload: payload}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
