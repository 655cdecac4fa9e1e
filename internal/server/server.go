package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP server around the configured Gin engine.
type Server struct {
	http *http.Server
	log  *zap.Logger
}

// New creates a server serving the given engine on the given port.
func New(engine *gin.Engine, port string, log *zap.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:    ":" + port,
			Handler: engine,
		},
		log: log.Named("server"),
	}
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, waiting at most shutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
