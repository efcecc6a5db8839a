package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/classical-cipher-go/internal/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// RespondError writes a JSON error response with logging. Client errors are
// logged at warn level, server errors at error level.
func RespondError(w http.ResponseWriter, err error) {
	appErr := errors.FromCipher(err)

	event := log.Warn()
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		event = log.Error()
	}
	if appErr.Cause != nil {
		event = event.Err(appErr.Cause)
	}
	event.Int("code", int(appErr.Code)).Msg(appErr.Message)

	RespondJSON(w, appErr.HTTPStatus, APIResponse{
		Code: int(appErr.Code),
		Msg:  appErr.Message,
		Data: appErr.Data,
	})
}

// RespondSuccess writes a JSON success response
func RespondSuccess(w http.ResponseWriter, data interface{}) {
	RespondJSON(w, http.StatusOK, APIResponse{
		Code: 0,
		Data: data,
	})
}

// RespondSuccessMsg writes a JSON success response with a message
func RespondSuccessMsg(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusOK, APIResponse{
		Code: 0,
		Msg:  message,
	})
}

// RespondJSON writes a raw JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
