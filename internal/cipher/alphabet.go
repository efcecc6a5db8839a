package cipher

import "strings"

// AlphabetSize is the modulus for every cipher in this package
const AlphabetSize = 26

// Filler pads odd digraphs and odd Hill blocks
const Filler = 'X'

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// Letters keeps only the ASCII letters of text and upper-cases them
func Letters(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isUpper(r):
			b.WriteRune(r)
		case isLower(r):
			b.WriteRune(r - 'a' + 'A')
		}
	}
	return b.String()
}

// Index maps 'A'..'Z' to 0..25
func Index(letter byte) int {
	return int(letter - 'A')
}

// Letter maps 0..25 to 'A'..'Z'
func Letter(index int) byte {
	return byte('A' + index)
}

func toIndices(letters string) []int {
	out := make([]int, len(letters))
	for i := 0; i < len(letters); i++ {
		out[i] = Index(letters[i])
	}
	return out
}
