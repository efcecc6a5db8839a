package cipher

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// seededSource is a reproducible entropy stream: the ChaCha20 keystream of
// a key derived from the seed
type seededSource struct {
	cipher *chacha20.Cipher
}

// NewSeededSource returns a deterministic reader for GenerateKey. The same
// seed always yields the same key, so it must never be used for real secrets.
func NewSeededSource(seed string) (io.Reader, error) {
	key := sha256.Sum256([]byte(seed))
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20 cipher: %w", err)
	}
	return &seededSource{cipher: c}, nil
}

func (s *seededSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}
