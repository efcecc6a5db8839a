package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classical-cipher-go/internal/auth"
	"github.com/classical-cipher-go/internal/dao"
	"github.com/classical-cipher-go/internal/errors"
	"github.com/classical-cipher-go/internal/trace"
)

// CtxUsernameKey holds the authenticated user in the gin context
const CtxUsernameKey = "username"

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AccountHandler handles login and the audit trail
type AccountHandler struct {
	jwtAuth *auth.JWTAuth
	userDAO *dao.UserDAO
	audit   dao.AuditSink
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(jwtAuth *auth.JWTAuth, userDAO *dao.UserDAO, audit dao.AuditSink) *AccountHandler {
	if audit == nil {
		audit = dao.NopAuditSink{}
	}
	return &AccountHandler{jwtAuth: jwtAuth, userDAO: userDAO, audit: audit}
}

// Login checks the credentials and returns a signed token
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		RespondError(c.Writer, errors.NewBadRequest("username and password required"))
		return
	}
	if err := h.userDAO.Validate(req.Username, req.Password); err != nil {
		RespondError(c.Writer, errors.NewUnauthorized("invalid username or password"))
		return
	}

	token, err := h.jwtAuth.GenerateToken(req.Username, auth.OperatorScopes...)
	if err != nil {
		RespondError(c.Writer, errors.NewInternalWithCause("failed to sign token", err))
		return
	}
	RespondSuccess(c.Writer, gin.H{"token": token, "username": req.Username})
}

// Audit returns the most recent cipher requests, newest first
func (h *AccountHandler) Audit(c *gin.Context) {
	limit := defaultAuditLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			RespondError(c.Writer, errors.NewBadRequest("limit must be a positive integer"))
			return
		}
		limit = min(n, maxAuditLimit)
	}

	records, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		RespondError(c.Writer, errors.NewStorageErrorWithCause("failed to read audit trail", err))
		return
	}
	if records == nil {
		records = []dao.AuditRecord{}
	}
	RespondSuccess(c.Writer, records)
}

// ChangePassword replaces the password of the logged in operator. Existing
// tokens stay valid until they expire.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBind(&req); err != nil {
		RespondError(c.Writer, errors.NewBadRequest("old_password and new_password required"))
		return
	}
	username := c.GetString(CtxUsernameKey)
	if err := h.userDAO.Validate(username, req.OldPassword); err != nil {
		RespondError(c.Writer, errors.NewUnauthorized("invalid username or password"))
		return
	}
	if req.NewPassword == req.OldPassword {
		RespondError(c.Writer, errors.NewBadRequest("new password must differ from the old one"))
		return
	}
	if err := h.userDAO.UpdatePassword(username, req.NewPassword); err != nil {
		RespondError(c.Writer, errors.NewStorageErrorWithCause("failed to update password", err))
		return
	}
	logger := trace.Logger(c.Request.Context())
	logger.Info().Str("user", username).Msg("Password changed")
	RespondSuccessMsg(c.Writer, "password updated")
}
