package handler

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classical-cipher-go/internal/cipher"
	"github.com/classical-cipher-go/internal/dao"
	"github.com/classical-cipher-go/internal/errors"
	"github.com/classical-cipher-go/internal/httputil"
	"github.com/classical-cipher-go/internal/modular"
	"github.com/classical-cipher-go/internal/trace"
)

// CipherHandler handles /api/<cipher> routes
type CipherHandler struct {
	audit     dao.AuditSink
	keySource io.Reader
}

// NewCipherHandler creates a cipher handler. keySource feeds one-time pad
// generation; nil means crypto/rand.
func NewCipherHandler(audit dao.AuditSink, keySource io.Reader) *CipherHandler {
	if audit == nil {
		audit = dao.NopAuditSink{}
	}
	return &CipherHandler{audit: audit, keySource: keySource}
}

// CaesarResponse is the data of a Caesar reply
type CaesarResponse struct {
	Result string `json:"result"`
}

// PlayfairResponse is the data of a Playfair reply
type PlayfairResponse struct {
	Result string   `json:"result"`
	Matrix []string `json:"matrix"`
	Pairs  []string `json:"pairs"`
}

// HillResponse is the data of a Hill reply. Inverse and Determinant are
// only set for decryption.
type HillResponse struct {
	Result      string           `json:"result"`
	Inverse     *modular.Matrix2 `json:"inverse,omitempty"`
	Determinant *int             `json:"determinant,omitempty"`
}

// OTPResponse is the data of a one-time pad reply. Key must be kept by the
// user to decrypt later; it is not stored anywhere.
type OTPResponse struct {
	Result  string `json:"result"`
	Key     []int  `json:"key"`
	KeyNums string `json:"keynums"`
}

// Ciphers lists the registered cipher types
func (h *CipherHandler) Ciphers(c *gin.Context) {
	RespondSuccess(c.Writer, cipher.ListRegistered())
}

// Caesar encrypts or decrypts with a shift key
func (h *CipherHandler) Caesar(c *gin.Context) {
	var req caesarRequest
	if !h.bind(c, &req) {
		return
	}
	action, err := parseAction(req.Action)
	if err != nil {
		h.fail(c, cipher.TypeCaesar, "", req.Text, err)
		return
	}
	key, err := httputil.ParseInt(req.Key.String())
	if err != nil {
		h.fail(c, cipher.TypeCaesar, action, req.Text, errors.NewMalformedInputWithCause("Key must be an integer.", err))
		return
	}

	var result string
	if action == ActionEncrypt {
		result = cipher.CaesarEncrypt(req.Text, key)
	} else {
		result = cipher.CaesarDecrypt(req.Text, key)
	}
	h.succeed(c, cipher.TypeCaesar, action, req.Text, CaesarResponse{Result: result})
}

// Playfair encrypts or decrypts with a keyword and returns the key square
// and digraphs used
func (h *CipherHandler) Playfair(c *gin.Context) {
	var req playfairRequest
	if !h.bind(c, &req) {
		return
	}
	action, err := parseAction(req.Action)
	if err != nil {
		h.fail(c, cipher.TypePlayfair, "", req.Text, err)
		return
	}
	if strings.TrimSpace(req.Keyword) == "" {
		h.fail(c, cipher.TypePlayfair, action, req.Text, errors.NewMalformedInput("Keyword required."))
		return
	}

	var res cipher.PlayfairResult
	if action == ActionEncrypt {
		res, err = cipher.PlayfairEncrypt(req.Text, req.Keyword)
	} else {
		res, err = cipher.PlayfairDecrypt(req.Text, req.Keyword)
	}
	if err != nil {
		h.fail(c, cipher.TypePlayfair, action, req.Text, err)
		return
	}

	pairs := make([]string, len(res.Digraphs))
	for i, d := range res.Digraphs {
		pairs[i] = d.String()
	}
	h.succeed(c, cipher.TypePlayfair, action, req.Text, PlayfairResponse{
		Result: res.Text,
		Matrix: res.Square.Rows(),
		Pairs:  pairs,
	})
}

// Hill encrypts or decrypts with a 2x2 key matrix. Decryption also returns
// the inverse matrix and the determinant.
func (h *CipherHandler) Hill(c *gin.Context) {
	var req hillRequest
	if !h.bind(c, &req) {
		return
	}
	action, err := parseAction(req.Action)
	if err != nil {
		h.fail(c, cipher.TypeHill, "", req.Text, err)
		return
	}
	key, err := httputil.ParseMatrix(req.A.String(), req.B.String(), req.C.String(), req.D.String())
	if err != nil {
		h.fail(c, cipher.TypeHill, action, req.Text, errors.NewMalformedInputWithCause("Matrix entries must be integers.", err))
		return
	}

	if action == ActionEncrypt {
		h.succeed(c, cipher.TypeHill, action, req.Text, HillResponse{Result: cipher.HillEncrypt(req.Text, key)})
		return
	}

	res, err := cipher.HillDecrypt(req.Text, key)
	if err != nil {
		h.fail(c, cipher.TypeHill, action, req.Text, err)
		return
	}
	h.succeed(c, cipher.TypeHill, action, req.Text, HillResponse{
		Result:      res.Text,
		Inverse:     &res.Inverse,
		Determinant: &res.Determinant,
	})
}

// OTP generates a fresh pad and encrypts, or decrypts with a pad supplied
// as comma separated numbers
func (h *CipherHandler) OTP(c *gin.Context) {
	var req otpRequest
	if !h.bind(c, &req) {
		return
	}
	action, err := parseAction(req.Action)
	if err != nil {
		h.fail(c, cipher.TypeOTP, "", req.Text, err)
		return
	}

	var key []int
	if action == ActionEncrypt {
		letters := len(cipher.Letters(req.Text))
		if letters == 0 {
			h.fail(c, cipher.TypeOTP, action, req.Text, errors.NewMalformedInput("Plaintext must contain letters for OTP encryption."))
			return
		}
		if key, err = cipher.GenerateKey(h.keySource, letters); err != nil {
			h.fail(c, cipher.TypeOTP, action, req.Text, errors.NewInternalWithCause("failed to generate key", err))
			return
		}
	} else {
		if strings.TrimSpace(req.KeyNums.String()) == "" {
			h.fail(c, cipher.TypeOTP, action, req.Text, errors.NewMalformedInput("Please paste key numbers as comma-separated values."))
			return
		}
		if key, err = httputil.ParseKeyNumbers(req.KeyNums.String()); err != nil {
			h.fail(c, cipher.TypeOTP, action, req.Text, errors.NewMalformedInputWithCause("Invalid key numbers format.", err))
			return
		}
	}

	var result string
	if action == ActionEncrypt {
		result, err = cipher.OTPEncrypt(req.Text, key)
	} else {
		result, err = cipher.OTPDecrypt(req.Text, key)
	}
	if err != nil {
		h.fail(c, cipher.TypeOTP, action, req.Text, err)
		return
	}
	h.succeed(c, cipher.TypeOTP, action, req.Text, OTPResponse{
		Result:  result,
		Key:     key,
		KeyNums: httputil.FormatKeyNumbers(key),
	})
}

func (h *CipherHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		RespondError(c.Writer, errors.NewBadRequest("Invalid request body"))
		return false
	}
	return true
}

func (h *CipherHandler) succeed(c *gin.Context, t cipher.Type, action Action, text string, data interface{}) {
	h.record(c.Request.Context(), t, action, text, dao.OutcomeOK)
	RespondSuccess(c.Writer, data)
}

func (h *CipherHandler) fail(c *gin.Context, t cipher.Type, action Action, text string, err error) {
	appErr := errors.FromCipher(err)
	h.record(c.Request.Context(), t, action, text, fmt.Sprintf("error:%d", appErr.Code))
	RespondError(c.Writer, appErr)
}

// record appends an audit entry. Audit failures never fail the request.
func (h *CipherHandler) record(ctx context.Context, t cipher.Type, action Action, text, outcome string) {
	rec := dao.AuditRecord{
		RequestID: trace.GetRequestID(ctx),
		Cipher:    string(t),
		Action:    string(action),
		Letters:   len(cipher.Letters(text)),
		Outcome:   outcome,
		CreatedAt: time.Now().UTC(),
	}
	logger := trace.Logger(ctx)
	if err := h.audit.Append(ctx, rec); err != nil {
		logger.Warn().Err(err).Msg("Failed to append audit record")
	}
	logger.Debug().
		Str("cipher", rec.Cipher).
		Str("action", rec.Action).
		Int("letters", rec.Letters).
		Str("outcome", outcome).
		Msg("Cipher request")
}
