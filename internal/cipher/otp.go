package cipher

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/classical-cipher-go/internal/modular"
)

// rejectAbove is the largest multiple of 26 that fits in a byte; bytes at or
// above it are discarded so every key value is uniform over [0, 26).
const rejectAbove = 256 - 256%AlphabetSize

// DefaultKeySource is the entropy used when GenerateKey is given nil
var DefaultKeySource io.Reader = rand.Reader

// GenerateKey draws n key values in [0, 26) from src
func GenerateKey(src io.Reader, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative key length: %d", n)
	}
	if src == nil {
		src = DefaultKeySource
	}

	key := make([]int, 0, n)
	buf := make([]byte, n)
	for len(key) < n {
		chunk := buf[:n-len(key)]
		if _, err := io.ReadFull(src, chunk); err != nil {
			return nil, fmt.Errorf("failed to read key entropy: %w", err)
		}
		for _, b := range chunk {
			if int(b) < rejectAbove {
				key = append(key, int(b)%AlphabetSize)
			}
		}
	}
	return key, nil
}

func otpApply(text string, key []int, sign int) (string, error) {
	letters := Letters(text)
	if len(letters) != len(key) {
		return "", &KeyLengthMismatchError{Letters: len(letters), KeyLen: len(key)}
	}
	out := make([]byte, len(letters))
	for i := 0; i < len(letters); i++ {
		out[i] = Letter(modular.Mod(Index(letters[i])+sign*key[i], AlphabetSize))
	}
	return string(out), nil
}

// OTPEncrypt adds key[i] to the i-th letter of plaintext. Non-letters are
// dropped and the output is upper-case.
func OTPEncrypt(plaintext string, key []int) (string, error) {
	return otpApply(plaintext, key, 1)
}

// OTPDecrypt subtracts key[i] from the i-th letter of ciphertext
func OTPDecrypt(ciphertext string, key []int) (string, error) {
	return otpApply(ciphertext, key, -1)
}
