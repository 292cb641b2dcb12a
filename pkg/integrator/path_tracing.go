package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultMaxDepth is the scatter limit used when none is configured
const DefaultMaxDepth = 50

// Background returns the radiance arriving along a ray that escapes the scene
type Background func(ray core.Ray) core.Vec3

// SkyGradient blends white at the horizon into light blue overhead
func SkyGradient(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return core.NewVec3(1.0, 1.0, 1.0).Lerp(core.NewVec3(0.5, 0.7, 1.0), t)
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth   int        // Maximum number of scatter events per path
	Background Background // Radiance for escaping rays, SkyGradient when nil
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: SkyGradient,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, sampler, 0)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := world.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return pt.background(ray)
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth >= pt.MaxDepth {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, world, sampler, depth+1))
}

func (pt *PathTracingIntegrator) background(ray core.Ray) core.Vec3 {
	if pt.Background == nil {
		return SkyGradient(ray)
	}
	return pt.Background(ray)
}
