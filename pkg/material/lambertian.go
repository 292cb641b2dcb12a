package material

import "github.com/df07/go-pathtracer/pkg/core"

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Surface color
}

// NewLambertian creates a new lambertian material. Albedo components must lie in [0,1].
func NewLambertian(albedo core.Vec3) (*Lambertian, error) {
	if err := validateAlbedo(albedo); err != nil {
		return nil, err
	}
	return &Lambertian{Albedo: albedo}, nil
}

// MustLambertian is like NewLambertian but panics on invalid parameters
func MustLambertian(albedo core.Vec3) *Lambertian {
	return must(NewLambertian(albedo))
}

// Scatter bounces the ray towards a random point in the unit sphere tangent to the hit point
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	direction := hit.Normal.Add(core.RandomInUnitSphere(sampler))

	// Catch degenerate scatter direction
	if direction.LengthSquared() < 1e-16 {
		direction = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: l.Albedo,
	}, true
}
