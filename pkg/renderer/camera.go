package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom    core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	VUp         core.Vec3 // World up vector
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
	Aperture    float64   // Lens diameter, 0 for a pinhole camera
	FocusDist   float64   // Distance to the plane in perfect focus
	Time0       float64   // Shutter open
	Time1       float64   // Shutter close
}

// DefaultCameraConfig frames the classic random spheres scene from (13,2,3)
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
		Aperture:    0.1,
		FocusDist:   10,
	}
}

// Validate checks the numeric ranges of the configuration
func (c CameraConfig) Validate() error {
	switch {
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vertical fov %f outside (0,180)", ErrInvalidConfig, c.VFov)
	case !(c.AspectRatio > 0):
		return fmt.Errorf("%w: aspect ratio %f must be positive", ErrInvalidConfig, c.AspectRatio)
	case !(c.Aperture >= 0):
		return fmt.Errorf("%w: aperture %f must not be negative", ErrInvalidConfig, c.Aperture)
	case !(c.FocusDist > 0):
		return fmt.Errorf("%w: focus distance %f must be positive", ErrInvalidConfig, c.FocusDist)
	case c.Time0 > c.Time1:
		return fmt.Errorf("%w: shutter opens at %f after it closes at %f", ErrInvalidConfig, c.Time0, c.Time1)
	}
	return nil
}

// Camera generates primary rays through a thin lens
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	time0, time1    float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Orthonormal camera basis, w points away from the look-at point
	back := config.LookFrom.Subtract(config.LookAt)
	if back.LengthSquared() == 0 {
		return nil, fmt.Errorf("%w: look-from equals look-at", ErrDegenerateCamera)
	}
	w := back.Normalize()
	right := config.VUp.Cross(w)
	if right.LengthSquared() < 1e-24 {
		return nil, fmt.Errorf("%w: up vector parallel to view direction", ErrDegenerateCamera)
	}
	u := right.Normalize()
	v := w.Cross(u)

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	horizontal := u.Multiply(2 * halfWidth * config.FocusDist)
	vertical := v.Multiply(2 * halfHeight * config.FocusDist)
	lowerLeftCorner := config.LookFrom.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDist))

	return &Camera{
		origin:          config.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
	}, nil
}

// GetRay generates a ray for screen coordinates (s, t) where (0,0) is the lower
// left corner of the image and (1,1) the upper right.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	time := c.time0
	if c.time1 > c.time0 {
		time += sampler.Get1D() * (c.time1 - c.time0)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRayAtTime(origin, direction, time)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
