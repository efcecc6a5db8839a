package httputil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/classical-cipher-go/internal/cipher"
	"github.com/classical-cipher-go/internal/modular"
)

// ParseInt parses a decimal integer, ignoring surrounding spaces
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

// ParseKeyNumbers parses a comma separated list of one-time pad values.
// Blank items are skipped and every value is reduced mod 26.
func ParseKeyNumbers(s string) ([]int, error) {
	var key []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		n, err := ParseInt(item)
		if err != nil {
			return nil, err
		}
		key = append(key, modular.Mod(n, cipher.AlphabetSize))
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("no key numbers given")
	}
	return key, nil
}

// FormatKeyNumbers renders key the way ParseKeyNumbers reads it
func FormatKeyNumbers(key []int) string {
	parts := make([]string, len(key))
	for i, v := range key {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// ParseMatrix reads the four entries a b / c d of a 2x2 key, each reduced mod 26
func ParseMatrix(a, b, c, d string) (modular.Matrix2, error) {
	var k modular.Matrix2
	for i, s := range []string{a, b, c, d} {
		n, err := ParseInt(s)
		if err != nil {
			return modular.Matrix2{}, err
		}
		k[i/2][i%2] = modular.Mod(n, cipher.AlphabetSize)
	}
	return k, nil
}

// ParseMatrixList reads "a,b,c,d"
func ParseMatrixList(s string) (modular.Matrix2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return modular.Matrix2{}, fmt.Errorf("matrix needs 4 comma separated entries, got %d", len(parts))
	}
	return ParseMatrix(parts[0], parts[1], parts[2], parts[3])
}
