package rlnc

import (
	cryptorand "crypto/rand"
	"crypto/sha256"
	mathrand "math/rand"

	"golang.org/x/crypto/chacha20"
)

// CoefficientSource yields uniformly distributed GF(256) elements. It is
// the only randomness the coding layers consume; Encoder and Recoder
// hold no random state of their own, the source is passed per call.
type CoefficientSource interface {
	Element() byte
}

// NewPRNGSource returns a deterministic source seeded from a math/rand
// generator. Intended for tests and reproducible encodings; not
// suitable where coefficient predictability matters.
func NewPRNGSource(seed int64) CoefficientSource {
	return &prngSource{r: mathrand.New(mathrand.NewSource(seed))}
}

type prngSource struct {
	r *mathrand.Rand
}

func (s *prngSource) Element() byte { return byte(s.r.Intn(256)) }

// NewChaCha20Source returns a deterministic source whose elements are the
// ChaCha20 keystream under a key derived from seed. Much faster than
// crypto/rand per element and reproducible from the seed alone, which
// suits high-rate encoders that still want unpredictable coefficients.
func NewChaCha20Source(seed []byte) (CoefficientSource, error) {
	key := sha256.Sum256(seed)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, err
	}
	return &chachaSource{cipher: c}, nil
}

type chachaSource struct {
	cipher *chacha20.Cipher
	buf    [256]byte
	n      int
}

func (s *chachaSource) Element() byte {
	if s.n == 0 {
		for i := range s.buf {
			s.buf[i] = 0
		}
		s.cipher.XORKeyStream(s.buf[:], s.buf[:])
		s.n = len(s.buf)
	}
	s.n--
	return s.buf[len(s.buf)-1-s.n]
}

// NewCryptoSource returns a source backed by crypto/rand, buffered to
// amortize the syscall cost. This is the default choice for production
// senders.
func NewCryptoSource() CoefficientSource {
	return &cryptoSource{}
}

type cryptoSource struct {
	buf [256]byte
	n   int
}

func (s *cryptoSource) Element() byte {
	if s.n == 0 {
		// crypto/rand.Read is documented to never fail on supported
		// platforms as of Go 1.23.
		_, _ = cryptorand.Read(s.buf[:])
		s.n = len(s.buf)
	}
	s.n--
	return s.buf[len(s.buf)-1-s.n]
}
