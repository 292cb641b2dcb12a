package integrator

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear radiance carried back along ray
	RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3
}

// Integrator names accepted by ByName
const (
	NamePathTracing   = "path-tracing"
	NameSurfaceNormal = "surface-normal"
	NameDepth         = "depth"
)

// Rays start this far along their direction to avoid self-intersection
const ShadowEpsilon = 0.001

// Names lists the available integrators
func Names() []string {
	return []string{NamePathTracing, NameSurfaceNormal, NameDepth}
}

// ByName creates the integrator registered under name. An empty name selects
// path tracing.
func ByName(name string, maxDepth int) (Integrator, error) {
	switch name {
	case NamePathTracing, "":
		if maxDepth <= 0 {
			return nil, fmt.Errorf("integrator: max depth must be positive, got %d", maxDepth)
		}
		return NewPathTracingIntegrator(maxDepth), nil
	case NameSurfaceNormal:
		return &SurfaceNormalIntegrator{}, nil
	case NameDepth:
		return NewDepthIntegrator(DefaultFarDistance), nil
	}
	return nil, fmt.Errorf("integrator: unknown integrator %q", name)
}
