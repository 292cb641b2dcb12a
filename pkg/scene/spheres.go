package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const smallRadius = 0.2

func ground() core.Hittable {
	return geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.MustLambertian(core.NewVec3(0.5, 0.5, 0.5)))
}

func bigSpheres() []core.Hittable {
	return []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.MustDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.MustLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.MustMetal(core.NewVec3(0.4, 0.2, 0.15), 0)),
	}
}

func randomDiffuse(random *rand.Rand) *material.Lambertian {
	r, g, b := random.Float64(), random.Float64(), random.Float64()
	return material.MustLambertian(core.NewVec3(r*r, g*g, b*b))
}

func randomMetal(random *rand.Rand) *material.Metal {
	albedo := core.NewVec3(1+random.Float64(), 1+random.Float64(), 1+random.Float64()).Multiply(0.5)
	return material.MustMetal(albedo, 0.5*random.Float64())
}

// sphereGrid places one small sphere in each cell of a 22x22 grid. 80% are
// diffuse, 15% metal and 5% glass. Diffuse spheres are handed to diffuse so
// callers can turn them into moving spheres.
func sphereGrid(random *rand.Rand, diffuse func(center core.Vec3, m core.Material) core.Hittable) []core.Hittable {
	var objects []core.Hittable
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), smallRadius, float64(b)+0.9*random.Float64())

			switch chooser := random.Float64(); {
			case chooser < 0.8:
				objects = append(objects, diffuse(center, randomDiffuse(random)))
			case chooser < 0.95:
				objects = append(objects, geometry.NewSphere(center, smallRadius, randomMetal(random)))
			default:
				objects = append(objects, geometry.NewSphere(center, smallRadius, material.MustDielectric(1.5)))
			}
		}
	}
	return objects
}

func randomSpheres(random *rand.Rand) ([]core.Hittable, renderer.CameraConfig) {
	objects := []core.Hittable{ground()}
	objects = append(objects, sphereGrid(random, func(center core.Vec3, m core.Material) core.Hittable {
		return geometry.NewSphere(center, smallRadius, m)
	})...)
	objects = append(objects, bigSpheres()...)

	return objects, renderer.DefaultCameraConfig()
}

func movingSpheres(random *rand.Rand) ([]core.Hittable, renderer.CameraConfig) {
	objects := []core.Hittable{ground()}
	objects = append(objects, sphereGrid(random, func(center core.Vec3, m core.Material) core.Hittable {
		end := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
		return geometry.NewMovingSphere(center, end, 0, 1, smallRadius, m)
	})...)
	objects = append(objects, bigSpheres()...)

	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Aperture = 0.05
	cameraConfig.Time0, cameraConfig.Time1 = 0, 1
	return objects, cameraConfig
}

func threeSpheres(random *rand.Rand) ([]core.Hittable, renderer.CameraConfig) {
	glass := material.MustDielectric(1.5)
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.MustLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.MustLambertian(core.NewVec3(0.8, 0.8, 0))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.MustMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		// A negative radius inner sphere turns the glass ball into a hollow bubble
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
	}

	lookFrom := core.NewVec3(-2, 2, 1)
	lookAt := core.NewVec3(0, 0, -1)
	return objects, renderer.CameraConfig{
		LookFrom:  lookFrom,
		LookAt:    lookAt,
		VUp:       core.NewVec3(0, 1, 0),
		VFov:      50,
		Aperture:  0,
		FocusDist: lookFrom.Subtract(lookAt).Length(),
	}
}

func twoSpheres(random *rand.Rand) ([]core.Hittable, renderer.CameraConfig) {
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.MustLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.MustLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}
	return objects, renderer.CameraConfig{
		LookFrom:  core.NewVec3(0, 0, 0),
		LookAt:    core.NewVec3(0, 0, -1),
		VUp:       core.NewVec3(0, 1, 0),
		VFov:      90,
		Aperture:  0,
		FocusDist: 1,
	}
}
