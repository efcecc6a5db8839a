package cipher

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildKeySquare(t *testing.T) {
	square := BuildKeySquare("MONARCHY")
	want := []string{"MONAR", "CHYBD", "EFGIK", "LPQST", "UVWXZ"}
	if got := square.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("BuildKeySquare(MONARCHY) = %v, want %v", got, want)
	}
	if row := square[0]; row != [5]byte{'M', 'O', 'N', 'A', 'R'} {
		t.Errorf("row 0 = %q, want MONAR", row[:])
	}
}

func TestBuildKeySquareNormalizesKeyword(t *testing.T) {
	// case, punctuation, J and repeats all collapse to the same square
	a := BuildKeySquare("play-fair jumps")
	b := BuildKeySquare("PLAYFIRUMS")
	if a != b {
		t.Errorf("squares differ:\n%v\n%v", a.Rows(), b.Rows())
	}
}

func TestKeySquareCompleteness(t *testing.T) {
	keywords := []string{"MONARCHY", "playfair example", "JJJJ", "zyx", "The Quick Brown Fox", "a1b2c3", ""}
	for _, kw := range keywords {
		t.Run(kw, func(t *testing.T) {
			square := BuildKeySquare(kw)
			counts := make(map[byte]int)
			for _, row := range square {
				for _, c := range row {
					counts[c]++
				}
			}
			for c := byte('A'); c <= 'Z'; c++ {
				want := 1
				if c == 'J' {
					want = 0
				}
				if counts[c] != want {
					t.Errorf("letter %c appears %d times, want %d", c, counts[c], want)
				}
			}

			ri, ci, err := square.Locate('I')
			if err != nil {
				t.Fatalf("Locate(I): %v", err)
			}
			rj, cj, err := square.Locate('J')
			if err != nil {
				t.Fatalf("Locate(J): %v", err)
			}
			if ri != rj || ci != cj {
				t.Errorf("J at (%d,%d), I at (%d,%d)", rj, cj, ri, ci)
			}
		})
	}
}

func TestLocateSymbolNotFound(t *testing.T) {
	square := BuildKeySquare("MONARCHY")
	_, _, err := square.Locate('3')
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("Locate('3') error = %v, want ErrSymbolNotFound", err)
	}
	var snf *SymbolNotFoundError
	if !errors.As(err, &snf) || snf.Symbol != '3' {
		t.Errorf("expected SymbolNotFoundError for '3', got %v", err)
	}

	var broken KeySquare
	if _, err := broken.transform([]Digraph{{'A', 'B'}}, 1); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("encrypt with empty square error = %v, want ErrSymbolNotFound", err)
	}
}

func TestPrepareDigraphs(t *testing.T) {
	testCases := []struct {
		text string
		want []string
	}{
		{"HELLO", []string{"HE", "LX", "LO"}},
		{"hello world", []string{"HE", "LX", "LO", "WO", "RL", "DX"}},
		{"BALLOON", []string{"BA", "LX", "LO", "ON"}},
		{"AAA", []string{"AX", "AX", "AX"}},
		{"Jump", []string{"IU", "MP"}},
		{"A", []string{"AX"}},
		{"", []string{}},
		{"ABAB", []string{"AB", "AB"}},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			pairs := PrepareDigraphs(tc.text)
			got := make([]string, len(pairs))
			for i, p := range pairs {
				got[i] = p.String()
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("PrepareDigraphs(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestPlayfairEncrypt(t *testing.T) {
	res, err := PlayfairEncrypt("HELLO", "MONARCHY")
	if err != nil {
		t.Fatalf("PlayfairEncrypt: %v", err)
	}
	if len(res.Digraphs) != 3 {
		t.Fatalf("digraphs = %v, want 3 pairs", res.Digraphs)
	}
	if res.Text != "CFSUPM" {
		t.Errorf("ciphertext = %q, want CFSUPM", res.Text)
	}

	testCases := []struct {
		name, text, keyword, want string
	}{
		// same row: shift right with wrap
		{"row rule", "AR", "MONARCHY", "RM"},
		// same column: shift down with wrap
		{"column rule", "MU", "MONARCHY", "CM"},
		{"rectangle rule", "HE", "MONARCHY", "CF"},
		{"classic example", "instruments", "MONARCHY", "GATLMZCLRQXA"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := PlayfairEncrypt(tc.text, tc.keyword)
			if err != nil {
				t.Fatalf("PlayfairEncrypt: %v", err)
			}
			if res.Text != tc.want {
				t.Errorf("PlayfairEncrypt(%q) = %q, want %q", tc.text, res.Text, tc.want)
			}
		})
	}
}

func TestPlayfairDecrypt(t *testing.T) {
	res, err := PlayfairDecrypt("CFSUPM", "MONARCHY")
	if err != nil {
		t.Fatalf("PlayfairDecrypt: %v", err)
	}
	if res.Text != "HELXLO" {
		t.Errorf("PlayfairDecrypt = %q, want HELXLO", res.Text)
	}

	// lower case and separators are ignored
	res, err = PlayfairDecrypt("cf-su pm", "monarchy")
	if err != nil {
		t.Fatalf("PlayfairDecrypt: %v", err)
	}
	if res.Text != "HELXLO" {
		t.Errorf("PlayfairDecrypt = %q, want HELXLO", res.Text)
	}
}

// An odd-length ciphertext loses its last letter. This mirrors the
// behaviour of the web tool and is kept on purpose.
func TestPlayfairDecryptDropsTrailingLetter(t *testing.T) {
	res, err := PlayfairDecrypt("CFSUPMA", "MONARCHY")
	if err != nil {
		t.Fatalf("PlayfairDecrypt: %v", err)
	}
	if res.Text != "HELXLO" {
		t.Errorf("PlayfairDecrypt = %q, want HELXLO", res.Text)
	}
	if len(res.Digraphs) != 3 {
		t.Errorf("digraphs = %d, want 3", len(res.Digraphs))
	}
}

func TestPlayfairRoundTrip(t *testing.T) {
	testCases := []struct {
		text, keyword, want string
	}{
		{"HIDETHEGOLD", "PLAYFAIR EXAMPLE", "HIDETHEGOLDX"},
		{"WEAREDISCOVERED", "MONARCHY", "WEAREDISCOVEREDX"},
		{"balloon", "keyword", "BALXLOON"},
	}
	for _, tc := range testCases {
		enc, err := PlayfairEncrypt(tc.text, tc.keyword)
		if err != nil {
			t.Fatalf("PlayfairEncrypt: %v", err)
		}
		dec, err := PlayfairDecrypt(enc.Text, tc.keyword)
		if err != nil {
			t.Fatalf("PlayfairDecrypt: %v", err)
		}
		if dec.Text != tc.want {
			t.Errorf("round-trip(%q) = %q, want %q", tc.text, dec.Text, tc.want)
		}
	}

	// even length, no doubled letters: exact recovery up to J -> I
	even := []string{"JUMPOVER", "CRYPTOGRAPHY", "ABCDEFGHIKLMNOPQRSTUVWXZ"}
	for _, text := range even {
		enc, _ := PlayfairEncrypt(text, "MONARCHY")
		dec, _ := PlayfairDecrypt(enc.Text, "MONARCHY")
		want := []byte(text)
		for i := range want {
			want[i] = foldJ(want[i])
		}
		if dec.Text != string(want) {
			t.Errorf("round-trip(%q) = %q, want %q", text, dec.Text, want)
		}
	}
}

func FuzzPlayfairOutput(f *testing.F) {
	f.Add("HELLO", "MONARCHY")
	f.Add("jj jj", "")
	f.Add("1234", "key")

	f.Fuzz(func(t *testing.T, text, keyword string) {
		res, err := PlayfairEncrypt(text, keyword)
		if err != nil {
			t.Fatalf("PlayfairEncrypt: %v", err)
		}
		if len(res.Text)%2 != 0 || len(res.Text) != 2*len(res.Digraphs) {
			t.Errorf("ciphertext %q has odd length or wrong pair count", res.Text)
		}
		if Letters(res.Text) != res.Text {
			t.Errorf("ciphertext %q is not upper-case letters", res.Text)
		}
	})
}
