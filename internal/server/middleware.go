package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/classical-cipher-go/internal/auth"
	"github.com/classical-cipher-go/internal/errors"
	"github.com/classical-cipher-go/internal/handler"
	"github.com/classical-cipher-go/internal/trace"
)

// TraceMiddleware adds request tracing context to each request
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := trace.GenerateRequestID()
		pathTag := trace.ExtractPathTag(c.Request.URL.Path)

		ctx := trace.WithRequestID(c.Request.Context(), reqID)
		ctx = trace.WithPathTag(ctx, pathTag)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

// LoggerMiddleware logs every request once it has been served
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger := trace.Logger(c.Request.Context())
		event := logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// CORSMiddleware allows the web page to be served from another origin
func CORSMiddleware(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.ExposeHeaders = []string{"X-Request-ID"}
	config.MaxAge = 12 * time.Hour
	return cors.New(config)
}

// ForceHTTPSMiddleware redirects HTTP to HTTPS
func ForceHTTPSMiddleware(httpsPort int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.TLS == nil && c.GetHeader("X-Forwarded-Proto") != "https" {
			host := c.Request.Host
			if i := strings.LastIndex(host, ":"); i >= 0 {
				host = host[:i]
			}
			if httpsPort != 443 {
				host = fmt.Sprintf("%s:%d", host, httpsPort)
			}
			target := fmt.Sprintf("https://%s%s", host, c.Request.URL.RequestURI())
			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthMiddleware validates the bearer token, requires scope and stores the
// username for the handlers
func AuthMiddleware(jwtAuth *auth.JWTAuth, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			handler.RespondError(c.Writer, errors.NewUnauthorized("user unlogin"))
			c.Abort()
			return
		}

		claims, err := jwtAuth.ValidateToken(token)
		if err != nil {
			handler.RespondError(c.Writer, errors.NewUnauthorized(err.Error()))
			c.Abort()
			return
		}
		if !claims.HasScope(scope) {
			handler.RespondError(c.Writer, errors.NewForbidden(fmt.Sprintf("token lacks scope %q", scope)))
			c.Abort()
			return
		}
		c.Set(handler.CtxUsernameKey, claims.Username)
		c.Next()
	}
}
