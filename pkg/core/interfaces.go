package core

// HitRecord contains information about a ray-object intersection.
// It is produced by a successful Hit and consumed immediately by the integrator.
type HitRecord struct {
	T        float64  // Parameter t along the ray
	Point    Vec3     // Point of intersection
	Normal   Vec3     // Unit surface normal, always pointing outward
	Material Material // Material of the hit object
}

// Hittable is implemented by everything a ray can be intersected with:
// primitives, flat lists and BVH nodes alike.
type Hittable interface {
	// Hit returns the closest intersection with t strictly inside (tMin, tMax)
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)

	// BoundingBox returns a box enclosing the object over the shutter interval [time0, time1].
	// Objects that cannot be bounded report false.
	BoundingBox(time0, time1 float64) (AABB, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// Material decides how an incoming ray continues after striking a surface
type Material interface {
	// Scatter returns the scattered ray and its attenuation, or false when the ray is absorbed
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}
