package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/classical-cipher-go/internal/cipher"
)

// ErrorCode represents application error codes
type ErrorCode int

const (
	// Client errors (4xx)
	ErrCodeBadRequest     ErrorCode = 400
	ErrCodeUnauthorized   ErrorCode = 401
	ErrCodeForbidden      ErrorCode = 403
	ErrCodeNotFound       ErrorCode = 404
	ErrCodeMalformedInput ErrorCode = 420
	ErrCodeInvalidKey     ErrorCode = 421
	ErrCodeKeyLength      ErrorCode = 422

	// Server errors (5xx)
	ErrCodeInternal ErrorCode = 500
	ErrCodeStorage  ErrorCode = 503
)

// AppError represents a structured application error
type AppError struct {
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	HTTPStatus int         `json:"-"`
	Cause      error       `json:"-"`
	Data       interface{} `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewBadRequest creates a bad request error
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorized creates an unauthorized error
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       ErrCodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden reports a valid token lacking the scope a route needs
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       ErrCodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFound creates a not found error
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:       ErrCodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewMalformedInput reports input the request layer could not turn into a
// key, a matrix or a text
func NewMalformedInput(message string) *AppError {
	return &AppError{
		Code:       ErrCodeMalformedInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewMalformedInputWithCause creates a malformed input error with cause
func NewMalformedInputWithCause(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeMalformedInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewInvalidKey creates an error for a Hill key with no inverse mod 26
func NewInvalidKey(determinant int, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidKey,
		Message:    fmt.Sprintf("key matrix not invertible mod 26. determinant = %d", determinant),
		HTTPStatus: http.StatusUnprocessableEntity,
		Cause:      cause,
		Data:       map[string]int{"determinant": determinant},
	}
}

// NewKeyLengthMismatch creates an error for a one-time pad of the wrong size
func NewKeyLengthMismatch(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeKeyLength,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewInternal creates an internal server error
func NewInternal(message string) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalWithCause creates an internal server error with cause
func NewInternalWithCause(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewStorageErrorWithCause creates a storage error with cause
func NewStorageErrorWithCause(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeStorage,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// FromCipher converts an error from the cipher package into an AppError.
// A broken key square is a programming error and maps to an internal error.
func FromCipher(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	var invalidKey *cipher.InvalidKeyError
	var keyLen *cipher.KeyLengthMismatchError
	switch {
	case stderrors.As(err, &invalidKey):
		return NewInvalidKey(invalidKey.Determinant, err)
	case stderrors.As(err, &keyLen):
		msg := fmt.Sprintf("key length must equal letter count (%d letters, %d key values)", keyLen.Letters, keyLen.KeyLen)
		return NewKeyLengthMismatch(msg, err)
	case stderrors.Is(err, cipher.ErrSymbolNotFound):
		return NewInternalWithCause("key square lookup failed", err)
	}
	return NewInternalWithCause("Internal server error", err)
}

// ToHTTPStatus converts an error to HTTP status code
func ToHTTPStatus(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// ToJSON converts an error to JSON bytes
func ToJSON(err error) []byte {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		data, _ := json.Marshal(map[string]interface{}{
			"code": appErr.Code,
			"msg":  appErr.Message,
		})
		return data
	}
	data, _ := json.Marshal(map[string]interface{}{
		"code": ErrCodeInternal,
		"msg":  err.Error(),
	})
	return data
}
