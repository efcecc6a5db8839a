package cipher

import "github.com/classical-cipher-go/internal/modular"

// CaesarEncrypt shifts every ASCII letter by k within its case.
// All other bytes, multi-byte UTF-8 included, are copied as is.
// Negative k shifts left.
func CaesarEncrypt(text string, k int) string {
	shift := byte(modular.Mod(k, AlphabetSize))
	out := []byte(text)
	for i, c := range out {
		switch {
		case c >= 'A' && c <= 'Z':
			out[i] = 'A' + (c-'A'+shift)%AlphabetSize
		case c >= 'a' && c <= 'z':
			out[i] = 'a' + (c-'a'+shift)%AlphabetSize
		}
	}
	return string(out)
}

// CaesarDecrypt undoes CaesarEncrypt with the same k
func CaesarDecrypt(text string, k int) string {
	return CaesarEncrypt(text, -modular.Mod(k, AlphabetSize))
}
