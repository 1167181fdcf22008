package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/custodia-labs/productsearch/internal/adapters/driven/render/html"
	"github.com/custodia-labs/productsearch/internal/logger"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the search page.
type Server struct {
	ports    *Ports
	echo     *echo.Echo
	renderer *html.Renderer
}

// NewServer creates a web server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		ports:    ports,
		echo:     e,
		renderer: html.NewRenderer(),
	}

	e.Use(middleware.Recover())
	e.Use(RequestLogger())
	e.Use(SecurityHeaders())

	e.GET("/", s.handleIndex)
	e.GET("/search", s.handleSearch)
	e.GET("/healthz", s.handleHealth)
	if ports.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(ports.Metrics))
	}

	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.echo.Server.ReadHeaderTimeout = 10 * time.Second

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Web server listening on %s", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web server: %w", err)
	}
	return nil
}
