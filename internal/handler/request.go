package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/classical-cipher-go/internal/errors"
)

// Field accepts a JSON string, number or array of numbers and keeps the raw
// text, so malformed keys are reported by the input layer instead of the
// JSON decoder. Arrays become comma separated lists.
type Field string

// UnmarshalJSON implements json.Unmarshaler
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	case b[0] == '[':
		var items []json.Number
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("key list must contain numbers: %w", err)
		}
		parts := make([]string, len(items))
		for i, n := range items {
			parts[i] = n.String()
		}
		*f = Field(strings.Join(parts, ","))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = Field(n.String())
	return nil
}

func (f Field) String() string { return string(f) }

// Action is what a cipher request asks for
type Action string

const (
	ActionEncrypt Action = "encrypt"
	ActionDecrypt Action = "decrypt"
)

// parseAction accepts the button labels of the web page as well as the
// plain action names
func parseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "generate & encrypt":
		return ActionEncrypt, nil
	case "decrypt":
		return ActionDecrypt, nil
	}
	return "", errors.NewMalformedInput(fmt.Sprintf("unknown action %q, want encrypt or decrypt", s))
}

type caesarRequest struct {
	Action string `json:"action" form:"action"`
	Text   string `json:"text" form:"text"`
	Key    Field  `json:"key" form:"key"`
}

type playfairRequest struct {
	Action  string `json:"action" form:"action"`
	Text    string `json:"text" form:"text"`
	Keyword string `json:"keyword" form:"keyword"`
}

type hillRequest struct {
	Action string `json:"action" form:"action"`
	Text   string `json:"text" form:"text"`
	A      Field  `json:"a" form:"a"`
	B      Field  `json:"b" form:"b"`
	C      Field  `json:"c" form:"c"`
	D      Field  `json:"d" form:"d"`
}

type otpRequest struct {
	Action  string `json:"action" form:"action"`
	Text    string `json:"text" form:"text"`
	KeyNums Field  `json:"keynums" form:"keynums"`
}

type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" binding:"required"`
	NewPassword string `json:"new_password" form:"new_password" binding:"required,min=4"`
}
