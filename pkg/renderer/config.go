package renderer

import (
	"fmt"
	"runtime"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// MaxImagePixels bounds width*height so pixel indices never overflow
const MaxImagePixels = 1 << 30

// RenderConfig contains the execution parameters of a render
type RenderConfig struct {
	Width           int    // Image width in pixels
	Height          int    // Image height in pixels
	SamplesPerPixel int    // Number of rays per pixel
	MaxDepth        int    // Maximum scatter events per path
	NumWorkers      int    // Number of partitions rendered in parallel
	Seed            int64  // Base seed, each partition uses Seed + partition ID
	Pattern         string // Pixel sampling pattern name
	Integrator      string // Integrator name
}

// DefaultRenderConfig returns a configuration for a small preview render
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 50,
		MaxDepth:        integrator.DefaultMaxDepth,
		NumWorkers:      runtime.NumCPU(),
		Seed:            42,
		Pattern:         core.PatternRandom,
		Integrator:      integrator.NamePathTracing,
	}
}

// AspectRatio returns width / height
func (c RenderConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Validate checks that the configuration can be rendered
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Width > MaxImagePixels/c.Height:
		return fmt.Errorf("%w: image size %dx%d exceeds %d pixels", ErrInvalidConfig, c.Width, c.Height, MaxImagePixels)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	case c.NumWorkers <= 0:
		return fmt.Errorf("%w: worker count %d", ErrInvalidConfig, c.NumWorkers)
	}
	if _, err := core.PatternByName(c.Pattern); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
