package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// RenderRequest holds the parsed query parameters of a render
type RenderRequest struct {
	Scene     string
	SceneSeed int64
	Format    string
	Config    renderer.RenderConfig
}

// parseRenderRequest reads the render parameters from the query string,
// falling back to the server defaults.
func (s *Server) parseRenderRequest(c echo.Context) (RenderRequest, error) {
	req := RenderRequest{
		Scene:     c.QueryParam("scene"),
		SceneSeed: scene.DefaultOptions().Seed,
		Format:    imageio.FormatPNG,
		Config:    s.defaults,
	}
	if req.Scene == "" {
		return req, errors.New("missing scene parameter")
	}
	if format := c.QueryParam("format"); format != "" {
		req.Format = format
	}
	if imageio.ContentType(req.Format) == "application/octet-stream" {
		return req, fmt.Errorf("%w: %q", imageio.ErrUnsupportedFormat, req.Format)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &req.Config.Width},
		{"height", &req.Config.Height},
		{"spp", &req.Config.SamplesPerPixel},
		{"depth", &req.Config.MaxDepth},
		{"workers", &req.Config.NumWorkers},
	}
	for _, p := range ints {
		if err := queryInt(c, p.name, p.dst); err != nil {
			return req, err
		}
	}
	if err := queryInt64(c, "seed", &req.Config.Seed); err != nil {
		return req, err
	}
	if err := queryInt64(c, "scene-seed", &req.SceneSeed); err != nil {
		return req, err
	}
	if pattern := c.QueryParam("pattern"); pattern != "" {
		req.Config.Pattern = pattern
	}
	if integ := c.QueryParam("integrator"); integ != "" {
		req.Config.Integrator = integ
	}

	if err := req.Config.Validate(); err != nil {
		return req, err
	}
	return req, s.checkLimits(req.Config)
}

func (s *Server) checkLimits(config renderer.RenderConfig) error {
	switch {
	case config.Height <= 0 || config.Width > s.limits.MaxPixels/config.Height:
		return fmt.Errorf("image of %dx%d exceeds %d pixels", config.Width, config.Height, s.limits.MaxPixels)
	case config.SamplesPerPixel > s.limits.MaxSamples:
		return fmt.Errorf("%d samples per pixel exceeds %d", config.SamplesPerPixel, s.limits.MaxSamples)
	case config.MaxDepth > s.limits.MaxDepth:
		return fmt.Errorf("depth %d exceeds %d", config.MaxDepth, s.limits.MaxDepth)
	case config.NumWorkers > s.limits.MaxWorkers:
		return fmt.Errorf("%d workers exceeds %d", config.NumWorkers, s.limits.MaxWorkers)
	}
	return nil
}

func queryInt(c echo.Context, name string, dst *int) error {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q", name, raw)
	}
	*dst = v
	return nil
}

func queryInt64(c echo.Context, name string, dst *int64) error {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q", name, raw)
	}
	*dst = v
	return nil
}

// buildScene builds the requested scene framed for the request's image size
func buildScene(name string, seed int64, config renderer.RenderConfig) (*scene.Scene, error) {
	opts := scene.DefaultOptions()
	opts.Seed = seed
	opts.AspectRatio = config.AspectRatio()

	sc, err := scene.Build(name, opts)
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return sc, err
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sc, err := buildScene(req.Scene, req.SceneSeed, req.Config)
	if err != nil {
		return err
	}
	scheduler, err := sc.NewScheduler(req.Config)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// A client that goes away cancels the render
	fb, stats, err := scheduler.Render(c.Request().Context(), nil)
	if err != nil {
		if errors.Is(err, renderer.ErrInterrupted) {
			logger.Warningf("render of %s interrupted: %v", req.Scene, err)
		}
		return err
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, req.Format, fb.ToRGBA()); err != nil {
		return err
	}

	header := c.Response().Header()
	header.Set("X-Render-Time", stats.RenderTime.String())
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples()))
	return c.Blob(http.StatusOK, imageio.ContentType(req.Format), buf.Bytes())
}
