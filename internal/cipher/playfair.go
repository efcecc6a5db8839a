package cipher

import "strings"

// KeySquareSize is the side of the Playfair key square
const KeySquareSize = 5

// KeySquare is the 5x5 Playfair grid. J never appears; it shares I's cell.
type KeySquare [KeySquareSize][KeySquareSize]byte

// Digraph is a pair of letters enciphered together
type Digraph [2]byte

func (d Digraph) String() string {
	return string(d[:])
}

// PlayfairResult carries the text together with the artifacts used to
// produce it, so callers can show the square and the pairs
type PlayfairResult struct {
	Text     string
	Square   KeySquare
	Digraphs []Digraph
}

func foldJ(c byte) byte {
	if c == 'J' {
		return 'I'
	}
	return c
}

// BuildKeySquare fills the square with the keyword letters in first-seen
// order, then the unused letters A..Z (J excluded) alphabetically.
func BuildKeySquare(keyword string) KeySquare {
	var (
		square KeySquare
		seen   [AlphabetSize]bool
		n      int
	)
	place := func(c byte) {
		if seen[Index(c)] {
			return
		}
		seen[Index(c)] = true
		square[n/KeySquareSize][n%KeySquareSize] = c
		n++
	}

	letters := Letters(keyword)
	for i := 0; i < len(letters); i++ {
		place(foldJ(letters[i]))
	}
	for c := byte('A'); c <= 'Z'; c++ {
		if c != 'J' {
			place(c)
		}
	}
	return square
}

// Locate returns the row and column of letter. J resolves to I's cell.
func (s KeySquare) Locate(letter byte) (row, col int, err error) {
	letter = foldJ(letter)
	for r := 0; r < KeySquareSize; r++ {
		for c := 0; c < KeySquareSize; c++ {
			if s[r][c] == letter {
				return r, c, nil
			}
		}
	}
	return 0, 0, &SymbolNotFoundError{Symbol: letter}
}

// Rows renders the square as one string per row
func (s KeySquare) Rows() []string {
	rows := make([]string, KeySquareSize)
	for r := range s {
		rows[r] = string(s[r][:])
	}
	return rows
}

// PrepareDigraphs splits the letters of plaintext into pairs. A pair whose
// letters would be equal, or a trailing single letter, is completed with
// Filler and only one letter is consumed.
func PrepareDigraphs(plaintext string) []Digraph {
	letters := []byte(Letters(plaintext))
	for i, c := range letters {
		letters[i] = foldJ(c)
	}

	pairs := make([]Digraph, 0, len(letters)/2+1)
	for i := 0; i < len(letters); {
		a := letters[i]
		if i+1 >= len(letters) || letters[i+1] == a {
			pairs = append(pairs, Digraph{a, Filler})
			i++
			continue
		}
		pairs = append(pairs, Digraph{a, letters[i+1]})
		i += 2
	}
	return pairs
}

// pairCiphertext groups letters two by two; an odd trailing letter is dropped
func pairCiphertext(ciphertext string) []Digraph {
	letters := Letters(ciphertext)
	pairs := make([]Digraph, 0, len(letters)/2)
	for i := 0; i+1 < len(letters); i += 2 {
		pairs = append(pairs, Digraph{letters[i], letters[i+1]})
	}
	return pairs
}

// substitute applies the Playfair rules with step +1 (encrypt) or -1 (decrypt)
func (s KeySquare) substitute(d Digraph, step int) (Digraph, error) {
	ra, ca, err := s.Locate(d[0])
	if err != nil {
		return Digraph{}, err
	}
	rb, cb, err := s.Locate(d[1])
	if err != nil {
		return Digraph{}, err
	}

	wrap := func(i int) int {
		return (i + step + KeySquareSize) % KeySquareSize
	}
	switch {
	case ra == rb:
		return Digraph{s[ra][wrap(ca)], s[rb][wrap(cb)]}, nil
	case ca == cb:
		return Digraph{s[wrap(ra)][ca], s[wrap(rb)][cb]}, nil
	default:
		return Digraph{s[ra][cb], s[rb][ca]}, nil
	}
}

func (s KeySquare) transform(pairs []Digraph, step int) (string, error) {
	var b strings.Builder
	b.Grow(len(pairs) * 2)
	for _, d := range pairs {
		out, err := s.substitute(d, step)
		if err != nil {
			return "", err
		}
		b.Write(out[:])
	}
	return b.String(), nil
}

// PlayfairEncrypt enciphers plaintext under keyword. The output is always
// upper-case letters of even length.
func PlayfairEncrypt(plaintext, keyword string) (PlayfairResult, error) {
	square := BuildKeySquare(keyword)
	pairs := PrepareDigraphs(plaintext)
	text, err := square.transform(pairs, 1)
	if err != nil {
		return PlayfairResult{}, err
	}
	return PlayfairResult{Text: text, Square: square, Digraphs: pairs}, nil
}

// PlayfairDecrypt deciphers ciphertext under keyword. Non-letters are
// ignored and no padding is applied, so an odd trailing letter is dropped.
func PlayfairDecrypt(ciphertext, keyword string) (PlayfairResult, error) {
	square := BuildKeySquare(keyword)
	pairs := pairCiphertext(ciphertext)
	text, err := square.transform(pairs, -1)
	if err != nil {
		return PlayfairResult{}, err
	}
	return PlayfairResult{Text: text, Square: square, Digraphs: pairs}, nil
}
