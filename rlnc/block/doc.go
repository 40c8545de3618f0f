// Package block provides a fixed-rate Reed-Solomon codec as a companion
// to the rateless rlnc codec.
//
// When the loss rate of a channel is known up front, a fixed data/parity
// split is cheaper than rateless coding: encode once, send data+parity
// shards, and recover from up to parity losses. Shards carry no
// coefficient vectors; their identity is positional, so the transport
// must preserve shard indices.
//
// Padding uses the same length-trailer discipline as package rlnc, so
// Join recovers the exact payload without an out-of-band size.
package block
