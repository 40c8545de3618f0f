// Package galois implements arithmetic over GF(256), the Galois field
// with 256 elements, using the primitive polynomial 0x11d.
//
// Every byte value is a field element. Addition and subtraction are both
// bitwise XOR (the field has characteristic 2); multiplication and
// division go through precomputed log/exp tables built from generator 2.
// The package also provides the two vector kernels the coding layers are
// built on: in-place scaling and scaled accumulation (axpy).
package galois
