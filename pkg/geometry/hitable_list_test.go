package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// unboundedShape is a Hittable without a bounding box
type unboundedShape struct{}

func (unboundedShape) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return nil, false
}

func (unboundedShape) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

func TestHitableList_ReturnsClosest(t *testing.T) {
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, nil)
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, nil)
	list := NewHitableList(far, near)

	hit, ok := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected closest hit at t=1.5, got %f", hit.T)
	}
}

func TestHitableList_BoundingBox(t *testing.T) {
	tests := []struct {
		name     string
		objects  []core.Hittable
		expectOk bool
		expected core.AABB
	}{
		{"empty", nil, false, core.AABB{}},
		{
			"all members",
			[]core.Hittable{
				NewSphere(core.NewVec3(-3, 0, 0), 1, nil),
				NewSphere(core.NewVec3(0, 0, 0), 1, nil),
				NewSphere(core.NewVec3(0, 5, 0), 1, nil),
			},
			true,
			core.NewAABB(core.NewVec3(-4, -1, -1), core.NewVec3(1, 6, 1)),
		},
		{
			"unbounded member",
			[]core.Hittable{NewSphere(core.NewVec3(0, 0, 0), 1, nil), unboundedShape{}},
			false,
			core.AABB{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, ok := NewHitableList(tt.objects...).BoundingBox(0, 0)
			if ok != tt.expectOk {
				t.Fatalf("Expected ok=%v, got %v", tt.expectOk, ok)
			}
			if ok && (!box.Min.Equals(tt.expected.Min) || !box.Max.Equals(tt.expected.Max)) {
				t.Errorf("Expected %v..%v, got %v..%v", tt.expected.Min, tt.expected.Max, box.Min, box.Max)
			}
		})
	}
}
