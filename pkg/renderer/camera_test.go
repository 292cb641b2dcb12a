package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// noDrawSampler fails the test if any random number is requested
type noDrawSampler struct {
	t *testing.T
}

func (s noDrawSampler) Get1D() float64 {
	s.t.Fatal("Unexpected sampler draw")
	return 0
}
func (s noDrawSampler) Get2D() core.Vec2 { return core.NewVec2(s.Get1D(), s.Get1D()) }
func (s noDrawSampler) Get3D() core.Vec3 { return core.NewVec3(s.Get1D(), s.Get1D(), s.Get1D()) }

func pinholeConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
		Aperture:    0,
		FocusDist:   1,
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *CameraConfig)
	}{
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }},
		{"straight angle fov", func(c *CameraConfig) { c.VFov = 180 }},
		{"zero aspect", func(c *CameraConfig) { c.AspectRatio = 0 }},
		{"negative aperture", func(c *CameraConfig) { c.Aperture = -0.1 }},
		{"zero focus distance", func(c *CameraConfig) { c.FocusDist = 0 }},
		{"reversed shutter", func(c *CameraConfig) { c.Time0, c.Time1 = 1, 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := pinholeConfig()
			tt.modify(&config)
			if _, err := NewCamera(config); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := DefaultCameraConfig().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestNewCamera_Degenerate(t *testing.T) {
	same := pinholeConfig()
	same.LookAt = same.LookFrom
	if _, err := NewCamera(same); !errors.Is(err, ErrDegenerateCamera) {
		t.Errorf("Expected ErrDegenerateCamera for look-from == look-at, got %v", err)
	}

	parallel := pinholeConfig()
	parallel.VUp = core.NewVec3(0, 0, 3)
	if _, err := NewCamera(parallel); !errors.Is(err, ErrDegenerateCamera) {
		t.Errorf("Expected ErrDegenerateCamera for up parallel to view, got %v", err)
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera, err := NewCamera(pinholeConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sampler := noDrawSampler{t}

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if !ray.Origin.IsZero() {
				t.Errorf("Expected pinhole origin at zero, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}

	if camera.Forward().Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-12 {
		t.Errorf("Unexpected forward %v", camera.Forward())
	}
}

func TestCamera_LensAndShutter(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 0.5
	config.FocusDist = 4
	config.Time0, config.Time1 = 0.25, 0.75
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	sampler := core.NewSeededSampler(8)
	focusPoint := core.NewVec3(0, 0, -4)
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		if ray.Origin.Length() >= 0.25 {
			t.Fatalf("Ray origin %v outside the lens", ray.Origin)
		}
		if ray.Time < 0.25 || ray.Time > 0.75 {
			t.Fatalf("Ray time %f outside the shutter interval", ray.Time)
		}
		// Every lens sample converges on the focus plane
		if ray.At(1).Subtract(focusPoint).Length() > 1e-9 {
			t.Fatalf("Expected ray through %v, got %v", focusPoint, ray.At(1))
		}
	}
	if math.IsNaN(camera.GetRay(0, 1, sampler).Direction.X) {
		t.Error("Unexpected NaN direction")
	}
}
