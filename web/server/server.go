package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

var logger = log.New("server")

// Limits bound the work a single request may ask for
type Limits struct {
	MaxPixels  int // Maximum width*height
	MaxSamples int // Maximum samples per pixel
	MaxDepth   int // Maximum scatter depth
	MaxWorkers int // Maximum parallel partitions
}

// DefaultLimits returns limits suitable for an interactive preview
func DefaultLimits() Limits {
	return Limits{
		MaxPixels:  1920 * 1080,
		MaxSamples: 1000,
		MaxDepth:   100,
		MaxWorkers: 256,
	}
}

// Server serves rendered previews of the registered scenes over HTTP
type Server struct {
	addr     string
	defaults renderer.RenderConfig
	limits   Limits
	echo     *echo.Echo
}

// New creates a server listening on addr. Request parameters that are not
// supplied fall back to defaults.
func New(addr string, defaults renderer.RenderConfig) *Server {
	s := &Server{
		addr:     addr,
		defaults: defaults,
		limits:   DefaultLimits(),
		echo:     echo.New(),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(corsMiddleware, requestLogger)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	return s
}

// SetLimits replaces the per-request limits
func (s *Server) SetLimits(limits Limits) {
	s.limits = limits
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the server is shut down
func (s *Server) Start() error {
	logger.Noticef("serving on http://%s", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		logger.Infof("%s %s -> %d (%s)", c.Request().Method, c.Request().URL.RequestURI(), c.Response().Status, time.Since(start))
		return nil
	}
}
