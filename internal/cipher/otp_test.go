package cipher

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

func TestGenerateKeyDeterministic(t *testing.T) {
	// 255 and 234 are rejected, 26 wraps to 0
	src := bytes.NewReader([]byte{0, 1, 2, 25, 26, 255, 233, 234})
	key, err := GenerateKey(src, 6)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	want := []int{0, 1, 2, 25, 0, 25}
	if !reflect.DeepEqual(key, want) {
		t.Errorf("key = %v, want %v", key, want)
	}
}

func TestGenerateKeyRange(t *testing.T) {
	key, err := GenerateKey(nil, 500)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if len(key) != 500 {
		t.Fatalf("len(key) = %d, want 500", len(key))
	}
	for i, v := range key {
		if v < 0 || v >= AlphabetSize {
			t.Fatalf("key[%d] = %d out of range", i, v)
		}
	}
}

func TestGenerateKeyErrors(t *testing.T) {
	if _, err := GenerateKey(bytes.NewReader([]byte{1, 2}), 3); err == nil {
		t.Error("expected error for short entropy source")
	}
	if _, err := GenerateKey(iotest.ErrReader(errors.New("boom")), 1); err == nil {
		t.Error("expected error from failing source")
	}
	if _, err := GenerateKey(nil, -1); err == nil {
		t.Error("expected error for negative length")
	}
	key, err := GenerateKey(bytes.NewReader(nil), 0)
	if err != nil || len(key) != 0 {
		t.Errorf("GenerateKey(0) = %v, %v", key, err)
	}
}

func TestSeededSourceReproducible(t *testing.T) {
	src1, err := NewSeededSource("lesson-1")
	if err != nil {
		t.Fatalf("NewSeededSource: %v", err)
	}
	src2, _ := NewSeededSource("lesson-1")
	src3, _ := NewSeededSource("lesson-2")

	k1, _ := GenerateKey(src1, 64)
	k2, _ := GenerateKey(src2, 64)
	k3, _ := GenerateKey(src3, 64)
	if !reflect.DeepEqual(k1, k2) {
		t.Error("same seed produced different keys")
	}
	if reflect.DeepEqual(k1, k3) {
		t.Error("different seeds produced the same key")
	}
}

func TestOTPEncryptDecrypt(t *testing.T) {
	key := []int{1, 1, 1, 1, 1, 1, 1}
	ct, err := OTPEncrypt("Hi there", key)
	if err != nil {
		t.Fatalf("OTPEncrypt: %v", err)
	}
	if ct != "IJUIFSF" {
		t.Errorf("ciphertext = %q, want IJUIFSF", ct)
	}
	pt, err := OTPDecrypt(ct, key)
	if err != nil {
		t.Fatalf("OTPDecrypt: %v", err)
	}
	if pt != "HITHERE" {
		t.Errorf("plaintext = %q, want HITHERE", pt)
	}

	// wrap around Z and below A
	ct, _ = OTPEncrypt("ZA", []int{2, 25})
	if ct != "BZ" {
		t.Errorf("OTPEncrypt(ZA) = %q, want BZ", ct)
	}
	pt, _ = OTPDecrypt("BZ", []int{2, 25})
	if pt != "ZA" {
		t.Errorf("OTPDecrypt(BZ) = %q, want ZA", pt)
	}
}

func TestOTPKeyValuesReduced(t *testing.T) {
	tests := []struct {
		name  string
		plain string
		key   []int
		want  string
	}{
		{"negative and above range", "AB", []int{-1, 27}, "ZC"},
		{"multiples of 26", "HI", []int{26, -52}, "HI"},
		{"large values", "Z", []int{26*4 + 3}, "C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := OTPEncrypt(tt.plain, tt.key)
			if err != nil {
				t.Fatalf("OTPEncrypt: %v", err)
			}
			if ct != tt.want {
				t.Errorf("OTPEncrypt(%q, %v) = %q, want %q", tt.plain, tt.key, ct, tt.want)
			}
			pt, err := OTPDecrypt(ct, tt.key)
			if err != nil {
				t.Fatalf("OTPDecrypt: %v", err)
			}
			if pt != tt.plain {
				t.Errorf("OTPDecrypt(%q) = %q, want %q", ct, pt, tt.plain)
			}
		})
	}
}

func TestOTPRoundTrip(t *testing.T) {
	src, err := NewSeededSource("round-trip")
	if err != nil {
		t.Fatalf("NewSeededSource: %v", err)
	}
	texts := []string{"Hello, World!", "one time pad", "x", strings.Repeat("abc", 100)}
	for _, text := range texts {
		key, err := GenerateKey(src, len(Letters(text)))
		if err != nil {
			t.Fatalf("GenerateKey: %v", err)
		}
		ct, err := OTPEncrypt(text, key)
		if err != nil {
			t.Fatalf("OTPEncrypt: %v", err)
		}
		pt, err := OTPDecrypt(ct, key)
		if err != nil {
			t.Fatalf("OTPDecrypt: %v", err)
		}
		if want := Letters(text); pt != want {
			t.Errorf("round-trip(%q) = %q, want %q", text, pt, want)
		}
	}
}

func TestOTPLengthGate(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		key     []int
		wantErr bool
	}{
		{"exact", "ABC", []int{1, 2, 3}, false},
		{"non letters ignored", "A-B C!", []int{1, 2, 3}, false},
		{"key too short", "ABCD", []int{1, 2, 3}, true},
		{"key too long", "AB", []int{1, 2, 3}, true},
		{"empty both", "...", nil, false},
		{"empty key", "A", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, encErr := OTPEncrypt(tc.text, tc.key)
			_, decErr := OTPDecrypt(tc.text, tc.key)
			for _, err := range []error{encErr, decErr} {
				if got := errors.Is(err, ErrKeyLengthMismatch); got != tc.wantErr {
					t.Errorf("error = %v, wantErr %v", err, tc.wantErr)
				}
			}
			if tc.wantErr {
				var klm *KeyLengthMismatchError
				if !errors.As(encErr, &klm) || klm.KeyLen != len(tc.key) || klm.Letters != len(Letters(tc.text)) {
					t.Errorf("unexpected mismatch detail: %v", encErr)
				}
			}
		})
	}
}

func FuzzOTPRoundTrip(f *testing.F) {
	f.Add("Hello, World!", "seed")
	f.Add("", "")

	f.Fuzz(func(t *testing.T, text, seed string) {
		src, err := NewSeededSource(seed)
		if err != nil {
			t.Fatal(err)
		}
		key, err := GenerateKey(src, len(Letters(text)))
		if err != nil {
			t.Fatal(err)
		}
		ct, err := OTPEncrypt(text, key)
		if err != nil {
			t.Fatal(err)
		}
		pt, err := OTPDecrypt(ct, key)
		if err != nil {
			t.Fatal(err)
		}
		if pt != Letters(text) {
			t.Errorf("round-trip failed: %q != %q", pt, Letters(text))
		}
	})
}
