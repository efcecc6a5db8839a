package trace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	pathTagKey   contextKey = "path_tag"
)

// GenerateRequestID generates a unique request ID in format "req-XXXXXX"
func GenerateRequestID() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "req-000000"
	}
	return "req-" + hex.EncodeToString(b)
}

// ExtractPathTag returns the first segment after /api, or the first path
// segment for other routes.
// For /api/hill -> "hill"
// For /health -> "health"
func ExtractPathTag(urlPath string) string {
	path := strings.TrimPrefix(urlPath, "/api")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "/"
	}
	return parts[0]
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey, reqID)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// WithPathTag adds path tag to context
func WithPathTag(ctx context.Context, pathTag string) context.Context {
	return context.WithValue(ctx, pathTagKey, pathTag)
}

// GetPathTag retrieves path tag from context
func GetPathTag(ctx context.Context) string {
	if v := ctx.Value(pathTagKey); v != nil {
		return v.(string)
	}
	return ""
}

// LogPrefix returns a formatted log prefix: "[req-xxx] [path] [op]"
func LogPrefix(ctx context.Context, operation string) string {
	reqID := GetRequestID(ctx)
	pathTag := GetPathTag(ctx)
	if reqID == "" {
		reqID = "req-??????"
	}
	if pathTag == "" {
		pathTag = "/"
	}
	return "[" + reqID + "] [" + pathTag + "] [" + operation + "]"
}

// Logger returns the global logger tagged with the request id and path tag
func Logger(ctx context.Context) zerolog.Logger {
	return log.With().
		Str("req", GetRequestID(ctx)).
		Str("tag", GetPathTag(ctx)).
		Logger()
}
