package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/classical-cipher-go/internal/cipher"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestCaesarCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"encrypt", []string{"caesar", "encrypt", "Hello, World!", "--key", "3"}, "Khoor, Zruog!\n"},
		{"decrypt", []string{"caesar", "decrypt", "Khoor, Zruog!", "--key", "3"}, "Hello, World!\n"},
		{"negative key", []string{"caesar", "encrypt", "abc", "--key=-1"}, "zab\n"},
		{"action case", []string{"caesar", "ENCRYPT", "a", "-k", "27"}, "b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlayfairCommand(t *testing.T) {
	got, err := run(t, "playfair", "encrypt", "instruments", "--keyword", "MONARCHY")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if lines[0] != "GATLMZCLRQXA" {
		t.Errorf("ciphertext = %q, want GATLMZCLRQXA", lines[0])
	}
	if lines[2] != "  M O N A R" {
		t.Errorf("first square row = %q", lines[2])
	}
	if !strings.Contains(got, "pairs: IN ST RU ME NT SX") {
		t.Errorf("missing pairs line in %q", got)
	}

	if _, err := run(t, "playfair", "encrypt", "hello"); err == nil {
		t.Error("expected error for missing keyword")
	}
}

func TestHillCommand(t *testing.T) {
	got, err := run(t, "hill", "encrypt", "HI", "--matrix", "3,3,2,5")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "TC\n" {
		t.Errorf("encrypt output = %q, want TC", got)
	}

	got, err = run(t, "hill", "decrypt", "TC", "--matrix", "3,3,2,5")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "HI\ndeterminant: 9\ninverse: [[15 17] [20 9]]\n"
	if got != want {
		t.Errorf("decrypt output = %q, want %q", got, want)
	}

	_, err = run(t, "hill", "decrypt", "ABCD", "--matrix", "2,4,6,8")
	var invalid *cipher.InvalidKeyError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidKeyError", err)
	}
	if invalid.Determinant != 18 {
		t.Errorf("determinant = %d, want 18", invalid.Determinant)
	}

	if _, err := run(t, "hill", "encrypt", "HI", "--matrix", "1,2,3"); err == nil {
		t.Error("expected error for short matrix")
	}
}

func TestOTPCommand(t *testing.T) {
	got, err := run(t, "otp", "decrypt", "IJUIFSF", "--keynums", "1,1,1,1,1,1,1")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(got, "HITHERE\n") {
		t.Errorf("decrypt output = %q", got)
	}

	first, err := run(t, "otp", "encrypt", "attack at dawn", "--seed", "lesson")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, _ := run(t, "otp", "encrypt", "attack at dawn", "--seed", "lesson")
	if first != second {
		t.Errorf("seeded runs differ: %q vs %q", first, second)
	}

	lines := strings.Split(strings.TrimSpace(first), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "key: ") {
		t.Fatalf("unexpected output %q", first)
	}
	back, err := run(t, "otp", "decrypt", lines[0], "--keynums", strings.TrimPrefix(lines[1], "key: "))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(back, "ATTACKATDAWN\n") {
		t.Errorf("round trip = %q", back)
	}

	if _, err := run(t, "otp", "encrypt", "123"); err == nil {
		t.Error("expected error for plaintext without letters")
	}
	if _, err := run(t, "otp", "decrypt", "ABC"); err == nil {
		t.Error("expected error for missing key numbers")
	}
	_, err = run(t, "otp", "decrypt", "ABC", "--keynums", "1,2")
	if !errors.Is(err, cipher.ErrKeyLengthMismatch) {
		t.Errorf("error = %v, want ErrKeyLengthMismatch", err)
	}
}

func TestUnknownAction(t *testing.T) {
	if _, err := run(t, "caesar", "rotate", "abc"); err == nil {
		t.Error("expected error for unknown action")
	}
}
