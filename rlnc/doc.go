// Package rlnc implements Random Linear Network Coding over GF(256).
//
// A payload is split into k fixed-length pieces; the Encoder emits an
// unbounded stream of coded pieces, each a random linear combination of
// the originals carrying its coefficient vector inline. Any k linearly
// independent coded pieces reconstruct the payload, no matter which of
// the (arbitrarily many) sent pieces arrive, in what order, or how many
// are lost or duplicated. A Recoder lets relay nodes generate fresh
// coded pieces from pieces they have observed, without ever decoding.
//
// The package targets unreliable best-effort channels where
// retransmission negotiation is undesirable: keep sending coded pieces
// until the receiver has rank k, then stop.
//
// All randomness is injected through the CoefficientSource capability,
// so piece generation is deterministic under test and free of hidden
// process-wide state.
package rlnc
