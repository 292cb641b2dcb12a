package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SurfaceNormalIntegrator colors each hit by its surface normal mapped into [0,1].
// Rays that escape are black.
type SurfaceNormalIntegrator struct{}

func (SurfaceNormalIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return core.Vec3{}
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}

// DefaultFarDistance is the hit distance rendered as white by the depth integrator
const DefaultFarDistance = 20.0

// DepthIntegrator shades each hit by its ray distance: black at the camera, white
// at FarDistance and beyond. Rays that escape are white.
type DepthIntegrator struct {
	FarDistance float64
}

// NewDepthIntegrator creates a depth integrator
func NewDepthIntegrator(farDistance float64) *DepthIntegrator {
	return &DepthIntegrator{FarDistance: farDistance}
}

func (d *DepthIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit || d.FarDistance <= 0 {
		return core.NewVec3(1, 1, 1)
	}

	// Distance along the ray, independent of the direction's length
	distance := hit.T * ray.Direction.Length()
	v := math.Min(distance/d.FarDistance, 1)
	return core.NewVec3(v, v, v)
}
