package cipher

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/classical-cipher-go/internal/modular"
)

// Type names a registered cipher
type Type string

const (
	TypeCaesar   Type = "caesar"
	TypePlayfair Type = "playfair"
	TypeHill     Type = "hill"
	TypeOTP      Type = "otp"
)

// Params holds every kind of key; each cipher reads only its own field
type Params struct {
	Shift   int
	Keyword string
	Matrix  modular.Matrix2
	Pad     []int
}

// TextCipher is the common shape of the registered ciphers
type TextCipher interface {
	Encrypt(text string) (string, error)
	Decrypt(text string) (string, error)
}

// Factory creates a cipher bound to the given key
type Factory func(p Params) (TextCipher, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[Type]Factory)
)

func init() {
	Register(TypeCaesar, func(p Params) (TextCipher, error) {
		return caesarCipher{shift: p.Shift}, nil
	})
	Register(TypePlayfair, func(p Params) (TextCipher, error) {
		if strings.TrimSpace(p.Keyword) == "" {
			return nil, fmt.Errorf("playfair keyword required")
		}
		return playfairCipher{keyword: p.Keyword}, nil
	})
	Register(TypeHill, func(p Params) (TextCipher, error) {
		return hillCipher{key: modular.Reduce(p.Matrix, AlphabetSize)}, nil
	})
	Register(TypeOTP, func(p Params) (TextCipher, error) {
		return otpCipher{key: p.Pad}, nil
	})
}

// Register adds a cipher factory to the registry
func Register(t Type, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[t] = factory
}

// NewCipher creates a cipher using the registry
func NewCipher(t Type, p Params) (TextCipher, error) {
	registryMu.RLock()
	factory, ok := registry[t]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported cipher type: %s", t)
	}
	return factory(p)
}

// ListRegistered returns all registered cipher types in name order
func ListRegistered() []Type {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// IsRegistered checks if a cipher type is registered
func IsRegistered(t Type) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[t]
	return ok
}

type caesarCipher struct{ shift int }

func (c caesarCipher) Encrypt(text string) (string, error) { return CaesarEncrypt(text, c.shift), nil }
func (c caesarCipher) Decrypt(text string) (string, error) { return CaesarDecrypt(text, c.shift), nil }

type playfairCipher struct{ keyword string }

func (c playfairCipher) Encrypt(text string) (string, error) {
	res, err := PlayfairEncrypt(text, c.keyword)
	return res.Text, err
}

func (c playfairCipher) Decrypt(text string) (string, error) {
	res, err := PlayfairDecrypt(text, c.keyword)
	return res.Text, err
}

type hillCipher struct{ key modular.Matrix2 }

func (c hillCipher) Encrypt(text string) (string, error) { return HillEncrypt(text, c.key), nil }

func (c hillCipher) Decrypt(text string) (string, error) {
	res, err := HillDecrypt(text, c.key)
	return res.Text, err
}

type otpCipher struct{ key []int }

func (c otpCipher) Encrypt(text string) (string, error) { return OTPEncrypt(text, c.key) }
func (c otpCipher) Decrypt(text string) (string, error) { return OTPDecrypt(text, c.key) }
