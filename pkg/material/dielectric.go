package material

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) (*Dielectric, error) {
	if !(refractiveIndex > 0) || math.IsInf(refractiveIndex, 0) {
		return nil, fmt.Errorf("%w: refractive index %f must be positive", ErrInvalidParameter, refractiveIndex)
	}
	return &Dielectric{RefractiveIndex: refractiveIndex}, nil
}

// MustDielectric is like NewDielectric but panics on invalid parameters
func MustDielectric(refractiveIndex float64) *Dielectric {
	return must(NewDielectric(refractiveIndex))
}

// Scatter either reflects or refracts the incoming ray. Surface normals always
// point out of the sphere, so the sign of dot(direction, normal) tells whether the
// ray is leaving the material. Exactly one sampler draw picks between the two.
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	direction := rayIn.Direction
	reflected := core.Reflect(direction, hit.Normal)

	var outwardNormal core.Vec3
	var niOverNt, cosine float64
	dot := direction.Dot(hit.Normal)
	if dot > 0 {
		// Exiting the material
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dot / direction.Length()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dot / direction.Length()
	}

	reflectProbability := 1.0
	refracted, canRefract := core.Refract(direction, outwardNormal, niOverNt)
	if canRefract {
		reflectProbability = Schlick(cosine, d.RefractiveIndex)
	}

	scatteredDirection := refracted
	if sampler.Get1D() < reflectProbability {
		scatteredDirection = reflected
	}

	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, scatteredDirection, rayIn.Time),
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

// Schlick approximates the Fresnel reflectance for a given incidence cosine
func Schlick(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
