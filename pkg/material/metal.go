package material

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzz float64) (*Metal, error) {
	if err := validateAlbedo(albedo); err != nil {
		return nil, err
	}
	if !(fuzz >= 0 && fuzz <= 1) {
		return nil, fmt.Errorf("%w: fuzz %f outside [0,1]", ErrInvalidParameter, fuzz)
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}, nil
}

// MustMetal is like NewMetal but panics on invalid parameters
func MustMetal(albedo core.Vec3, fuzz float64) *Metal {
	return must(NewMetal(albedo, fuzz))
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)

	// Add fuzziness by perturbing the reflection direction
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)

	// Rays perturbed below the surface are absorbed
	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, scattered.Direction.Dot(hit.Normal) > 0
}
