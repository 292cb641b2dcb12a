package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// HitableList is a flat collection of objects tested one by one
type HitableList struct {
	Objects []core.Hittable
}

// NewHitableList creates a list from the given objects
func NewHitableList(objects ...core.Hittable) *HitableList {
	return &HitableList{Objects: objects}
}

// Add appends an object to the list
func (l *HitableList) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Hit returns the closest intersection among all objects
func (l *HitableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the box surrounding every object. It reports false when the
// list is empty or any member is unbounded.
func (l *HitableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, object := range l.Objects {
		objectBox, ok := object.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = objectBox
		} else {
			box = core.SurroundingBox(box, objectBox)
		}
	}
	return box, true
}
