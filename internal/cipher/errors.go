package cipher

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when a Hill key matrix has no inverse mod 26.
	ErrInvalidKey = errors.New("key not invertible mod 26")

	// ErrKeyLengthMismatch is returned when a one-time pad key does not have
	// one value per letter of the text.
	ErrKeyLengthMismatch = errors.New("key length mismatch")

	// ErrSymbolNotFound signals a broken Playfair key square. It is
	// unreachable for squares built by BuildKeySquare.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// InvalidKeyError carries the determinant of the rejected matrix
type InvalidKeyError struct {
	Determinant int
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("%s: determinant = %d", ErrInvalidKey, e.Determinant)
}

func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// KeyLengthMismatchError reports the expected and supplied key lengths
type KeyLengthMismatchError struct {
	Letters int
	KeyLen  int
}

func (e *KeyLengthMismatchError) Error() string {
	return fmt.Sprintf("%s: text has %d letters, key has %d values", ErrKeyLengthMismatch, e.Letters, e.KeyLen)
}

func (e *KeyLengthMismatchError) Unwrap() error { return ErrKeyLengthMismatch }

// SymbolNotFoundError names the letter missing from a key square
type SymbolNotFoundError struct {
	Symbol byte
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrSymbolNotFound, e.Symbol)
}

func (e *SymbolNotFoundError) Unwrap() error { return ErrSymbolNotFound }
