package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/recruit-dash/internal/auth"
	"github.com/honeycarbs/recruit-dash/internal/domain"
	"github.com/honeycarbs/recruit-dash/internal/mcp"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

// ApplicantService lists normalized applicants
type ApplicantService interface {
	List(ctx context.Context) (domain.ApplicantSnapshot, error)
}

// AuthService logs users in and verifies their tokens
type AuthService interface {
	Login(ctx context.Context, userID, password string) (auth.Login, error)
	Verify(ctx context.Context, token string) (auth.Session, error)
}

// Config is where the server listens
type Config struct {
	Host string
	Port string
}

// Server hosts the applicant, login and verify functions plus the MCP stream
type Server struct {
	logger *logging.Logger
	engine *gin.Engine

	srv     *http.Server
	started atomic.Bool
}

// New builds the HTTP server. mcpHandler may be nil; when set it is served
// behind a bearer token check.
func New(cfg Config, log *logging.Logger, applicants ApplicantService, authSvc AuthService, mcpHandler http.Handler) *Server {
	engine := gin.New()
	engine.Use(requestLogger(log), gin.Recovery(), cors.New(corsConfig()))

	h := &handlers{applicants: applicants, auth: authSvc, logger: log}

	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := engine.Group("/api")
	{
		api.GET("/applicants", h.fetchApplicants)
		api.Any("/login", h.login)
		api.Any("/verify-auth", h.verifyAuth)
	}

	if mcpHandler != nil {
		engine.Any(mcp.StreamPath, h.requireBearer, gin.WrapH(mcpHandler))
	}

	return &Server{
		logger: log,
		engine: engine,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.OptionsResponseStatusCode = http.StatusOK
	return cfg
}

// Handler exposes the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr is the configured listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}
