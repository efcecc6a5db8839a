package cipher

import "github.com/classical-cipher-go/internal/modular"

// HillResult is the outcome of a successful Hill decryption
type HillResult struct {
	Text        string
	Inverse     modular.Matrix2
	Determinant int
}

func hillApply(letters string, k modular.Matrix2) string {
	v := toIndices(letters)
	out := make([]byte, 0, len(v))
	for i := 0; i+1 < len(v); i += 2 {
		c0, c1 := modular.MulVec(k, v[i], v[i+1], AlphabetSize)
		out = append(out, Letter(c0), Letter(c1))
	}
	return string(out)
}

// HillEncrypt enciphers the letters of plaintext two at a time with k.
// An odd letter count is padded with Filler. Singular keys are accepted.
func HillEncrypt(plaintext string, k modular.Matrix2) string {
	letters := Letters(plaintext)
	if len(letters)%2 == 1 {
		letters += string(Filler)
	}
	return hillApply(letters, modular.Reduce(k, AlphabetSize))
}

// HillDecrypt inverts k mod 26 and applies it to the letters of ciphertext.
// It returns an *InvalidKeyError when the determinant shares a factor with 26.
// An odd trailing letter is dropped.
func HillDecrypt(ciphertext string, k modular.Matrix2) (HillResult, error) {
	inv, det, ok := modular.Inverse2(modular.Reduce(k, AlphabetSize), AlphabetSize)
	if !ok {
		return HillResult{Determinant: det}, &InvalidKeyError{Determinant: det}
	}
	return HillResult{
		Text:        hillApply(Letters(ciphertext), inv),
		Inverse:     inv,
		Determinant: det,
	}, nil
}
