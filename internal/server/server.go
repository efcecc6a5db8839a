package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/classical-cipher-go/internal/auth"
	"github.com/classical-cipher-go/internal/config"
	"github.com/classical-cipher-go/internal/dao"
	"github.com/classical-cipher-go/internal/handler"
	"github.com/classical-cipher-go/internal/storage"
	"github.com/classical-cipher-go/web"
)

// Server represents the HTTP server
type Server struct {
	cfg         *config.Config
	store       *storage.Store
	audit       dao.AuditSink
	userDAO     *dao.UserDAO
	jwtAuth     *auth.JWTAuth
	router      *gin.Engine
	httpServer  *http.Server
	httpsServer *http.Server
}

// Option customizes a Server
type Option func(*Server)

// WithAuditSink replaces the sink selected by the configuration
func WithAuditSink(sink dao.AuditSink) Option {
	return func(s *Server) { s.audit = sink }
}

// New creates a new server instance
func New(ctx context.Context, cfg *config.Config, keySource io.Reader, opts ...Option) (*Server, error) {
	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	expireHours := cfg.JWTExpire
	if expireHours <= 0 {
		expireHours = 24
	}
	s := &Server{
		cfg:     cfg,
		store:   store,
		userDAO: dao.NewUserDAO(store),
		jwtAuth: auth.NewJWTAuth(cfg.JWTSecret, time.Duration(expireHours)*time.Hour),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.audit == nil {
		if s.audit, err = newAuditSink(ctx, cfg, store); err != nil {
			store.Close()
			return nil, err
		}
	}

	// Ensure default admin user exists
	if err := s.userDAO.EnsureDefaultUser(); err != nil {
		log.Warn().Err(err).Msg("Failed to ensure default user")
	}
	if s.defaultCredentials() {
		log.Warn().
			Str("user", dao.DefaultAdminUser).
			Msg("Default jwt_secret and admin password are in use; anyone can read the audit trail. Change both.")
	}

	s.setupRoutes(keySource)
	return s, nil
}

// defaultCredentials reports whether both the shipped JWT secret and the
// shipped admin password are still active
func (s *Server) defaultCredentials() bool {
	return s.cfg.JWTSecret == config.DefaultJWTSecret && s.userDAO.HasDefaultPassword()
}

func newAuditSink(ctx context.Context, cfg *config.Config, store *storage.Store) (dao.AuditSink, error) {
	switch cfg.Audit.Driver {
	case "mysql":
		sink, err := dao.NewMySQLAuditSink(ctx, cfg.Audit.MySQL)
		if err != nil {
			return nil, fmt.Errorf("failed to create mysql audit sink: %w", err)
		}
		log.Info().Str("host", cfg.Audit.MySQL.Host).Msg("Audit trail in MySQL")
		return sink, nil
	case "none":
		return dao.NopAuditSink{}, nil
	default:
		log.Info().Str("path", store.Path()).Msg("Audit trail in BoltDB")
		return dao.NewBoltAuditSink(store), nil
	}
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes(keySource io.Reader) {
	r := gin.New()
	s.router = r

	// Middleware
	r.Use(TraceMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(gin.Recovery())
	r.Use(CORSMiddleware(s.cfg.CORS))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Force HTTPS redirect if enabled
	if s.cfg.Scheme.ForceHTTPS && s.cfg.IsHTTPSEnabled() {
		r.Use(ForceHTTPSMiddleware(s.cfg.Scheme.HTTPSPort))
	}

	// Serve static files (WebUI)
	r.StaticFS("/public", web.GetFileSystem())
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/public/")
	})
	r.GET("/health", HealthHandler)
	r.GET("/ready", ReadyHandler)

	// Create handlers
	cipherHandler := handler.NewCipherHandler(s.audit, keySource)
	accountHandler := handler.NewAccountHandler(s.jwtAuth, s.userDAO, s.audit)

	api := r.Group("/api")
	{
		api.GET("/ciphers", cipherHandler.Ciphers)
		api.POST("/caesar", cipherHandler.Caesar)
		api.POST("/playfair", cipherHandler.Playfair)
		api.POST("/hill", cipherHandler.Hill)
		api.POST("/otp", cipherHandler.OTP)
		api.POST("/login", accountHandler.Login)

		api.GET("/audit", AuthMiddleware(s.jwtAuth, auth.ScopeAuditRead), accountHandler.Audit)
		api.POST("/password", AuthMiddleware(s.jwtAuth, auth.ScopeAccount), accountHandler.ChangePassword)
	}
}

// Start starts the server(s) and blocks until one of them fails
func (s *Server) Start() error {
	errChan := make(chan error, 2)

	go func() {
		if err := s.startHTTP(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if s.cfg.IsHTTPSEnabled() {
		go func() {
			if err := s.startHTTPS(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("HTTPS server error: %w", err)
			}
		}()
	}

	return <-errChan
}

func (s *Server) startHTTP() error {
	addr := s.cfg.GetHTTPAddr()

	var httpHandler http.Handler = s.router

	// Enable h2c (HTTP/2 cleartext) if configured
	if s.cfg.IsH2CEnabled() {
		h2s := &http2.Server{
			MaxConcurrentStreams: 250,
			IdleTimeout:          120 * time.Second,
		}
		httpHandler = h2c.NewHandler(s.router, h2s)
		log.Info().Msg("HTTP/2 cleartext (h2c) enabled")
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("Starting HTTP server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) startHTTPS() error {
	addr := s.cfg.GetHTTPSAddr()

	s.httpsServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"h2", "http/1.1"},
		},
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Enable HTTP/2
	if err := http2.ConfigureServer(s.httpsServer, &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}); err != nil {
		return fmt.Errorf("failed to configure HTTP/2: %w", err)
	}

	log.Info().Str("addr", addr).Msg("Starting HTTPS server with HTTP/2")
	return s.httpsServer.ListenAndServeTLS(s.cfg.Scheme.CertFile, s.cfg.Scheme.KeyFile)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down server...")

	var lastErr error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			lastErr = err
		}
	}

	if s.httpsServer != nil {
		if err := s.httpsServer.Shutdown(ctx); err != nil {
			lastErr = err
		}
	}

	if err := s.audit.Close(); err != nil {
		lastErr = err
	}

	if err := s.store.Close(); err != nil {
		lastErr = err
	}

	return lastErr
}
