package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestSphere_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, nil)

	tests := []struct {
		name           string
		ray            core.Ray
		tMin, tMax     float64
		expectHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "head on",
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
			tMin:           0.001,
			tMax:           math.Inf(1),
			expectHit:      true,
			expectedT:      0.5,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "from inside takes far root",
			ray:            core.NewRay(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1)),
			tMin:           0.001,
			tMax:           math.Inf(1),
			expectHit:      true,
			expectedT:      0.5,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:      "miss",
			ray:       core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0)),
			tMin:      0.001,
			tMax:      math.Inf(1),
			expectHit: false,
		},
		{
			name:      "tangent ray does not hit",
			ray:       core.NewRay(core.NewVec3(0.5, 0, 0), core.NewVec3(0, 0, -1)),
			tMin:      0.001,
			tMax:      math.Inf(1),
			expectHit: false,
		},
		{
			name:      "both roots outside interval",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
			tMin:      0.001,
			tMax:      0.4,
			expectHit: false,
		},
		{
			name:      "behind the origin",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      math.Inf(1),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(tt.ray, tt.tMin, tt.tMax)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}
		})
	}
}

func TestSphere_NegativeRadius(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -0.45, nil)

	box, ok := sphere.BoundingBox(0, 1)
	if !ok || !box.IsValid() {
		t.Fatalf("Expected valid bounding box, got %v..%v", box.Min, box.Max)
	}
	if !box.Max.Equals(core.NewVec3(0.45, 0.45, 0.45)) {
		t.Errorf("Expected box extent 0.45, got %v", box.Max)
	}

	hit, ok := sphere.Hit(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit on negative radius sphere")
	}
	// Normal points inwards
	if hit.Normal.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected inward normal, got %v", hit.Normal)
	}
}

func TestMovingSphere_CenterAt(t *testing.T) {
	s := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0, 1, 0.2, nil)

	if !s.CenterAt(0).Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("Expected start center, got %v", s.CenterAt(0))
	}
	if s.CenterAt(0.5).Subtract(core.NewVec3(0, 0.5, 0)).Length() > 1e-12 {
		t.Errorf("Expected midpoint center, got %v", s.CenterAt(0.5))
	}

	static := NewMovingSphere(core.NewVec3(1, 2, 3), core.NewVec3(9, 9, 9), 0.5, 0.5, 1, nil)
	if !static.CenterAt(0.7).Equals(core.NewVec3(1, 2, 3)) {
		t.Error("Expected empty time interval to keep the first center")
	}
}

func TestMovingSphere_BoundingBoxCoversMotion(t *testing.T) {
	s := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0, 1, 0.2, nil)

	box, ok := s.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected bounding box")
	}
	for _, time := range []float64{0, 0.25, 0.5, 0.75, 1} {
		instant := sphereBox(s.CenterAt(time), s.Radius)
		if !box.Contains(instant) {
			t.Errorf("Box %v..%v does not contain sphere at time %f", box.Min, box.Max, time)
		}
	}
}

func TestMovingSphere_HitUsesRayTime(t *testing.T) {
	s := NewMovingSphere(core.NewVec3(0, 0, -2), core.NewVec3(0, 4, -2), 0, 1, 0.5, nil)
	dir := core.NewVec3(0, 0, -1)

	if _, ok := s.Hit(core.NewRayAtTime(core.NewVec3(0, 0, 0), dir, 0), 0.001, math.Inf(1)); !ok {
		t.Error("Expected hit at time 0")
	}
	if _, ok := s.Hit(core.NewRayAtTime(core.NewVec3(0, 0, 0), dir, 1), 0.001, math.Inf(1)); ok {
		t.Error("Expected miss at time 1 once the sphere has moved away")
	}
}
