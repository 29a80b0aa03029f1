// Package server provides the HTTP surface: upload form, screenshot
// generation and one-time download.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/user/codeshot/pkg/ports"
	"github.com/user/codeshot/pkg/snapshot"
)

// Generator produces a rendered screenshot from uploaded source.
// Implemented by snapshot.Generator; faked in tests.
type Generator interface {
	Generate(ctx context.Context, source, filename string) (*snapshot.Image, error)
}

// Options configures a Server.
type Options struct {
	// SecretKey signs the session cookie.
	SecretKey string
	// Store holds rendered screenshots between requests.
	Store ports.Store
	// Generator runs the highlight-and-render pipeline.
	Generator Generator
	// Logger receives request-level progress. Nil disables logging.
	Logger ports.Logger
}

// Server serves the upload/download flow.
type Server struct {
	echo      *echo.Echo
	store     ports.Store
	generator Generator
	log       ports.Logger
}

// New creates a Server with its routes registered.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = noopLogger{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	cookies := sessions.NewCookieStore([]byte(opts.SecretKey))
	cookies.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		// MaxAge 0 makes it a browser-session cookie
		MaxAge: 0,
	}
	e.Use(session.Middleware(cookies))

	e.Renderer = newRenderer()

	s := &Server{
		echo:      e,
		store:     opts.Store,
		generator: opts.Generator,
		log:       log.WithComponent("server"),
	}

	e.GET("/", s.handleIndex)
	e.POST("/", s.handleUpload)
	e.GET("/download", s.handleDownload)

	return s
}

// Start listens on address and serves until Shutdown or failure.
func (s *Server) Start(address string) error {
	s.log.Info("Listening on %s", address)
	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down...")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// noopLogger avoids nil checks on every log call.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})      {}
func (noopLogger) Info(string, ...interface{})       {}
func (noopLogger) Warn(string, ...interface{})       {}
func (noopLogger) Error(string, ...interface{})      {}
func (noopLogger) WithComponent(string) ports.Logger { return noopLogger{} }
