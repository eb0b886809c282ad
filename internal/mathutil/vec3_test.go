package mathutil

import (
	"math"
	"testing"
)

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Errorf("expected unit length, got %v", v.Len())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("normalizing zero vector should return zero, got %+v", zero)
	}
}

func TestVec3FlattenY(t *testing.T) {
	v := Vec3{1, 2, 3}.FlattenY()
	if v.Y != 0 || v.X != 1 || v.Z != 3 {
		t.Errorf("unexpected flatten result %+v", v)
	}
}

func TestQuatRotateYaw(t *testing.T) {
	// Quarter turn about +Y sends +Z to +X.
	q := EulerToQuat(0, math.Pi/2, 0)
	v := q.Rotate(Vec3{0, 0, 1})
	if math.Abs(v.X-1) > 1e-9 || math.Abs(v.Y) > 1e-9 || math.Abs(v.Z) > 1e-9 {
		t.Errorf("expected (1,0,0), got %+v", v)
	}
}

func TestQuatRotatePitch(t *testing.T) {
	// Pitching down about +X tips +Z toward -Y... verify length preserved
	// and sign convention: positive rx sends +Z to +Y side of the plane.
	q := EulerToQuat(math.Pi/2, 0, 0)
	v := q.Rotate(Vec3{0, 0, 1})
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Errorf("rotation should preserve length, got %v", v.Len())
	}
	if math.Abs(v.Z) > 1e-9 {
		t.Errorf("quarter pitch should remove the Z component, got %+v", v)
	}
}

func TestQuatMulIdentity(t *testing.T) {
	q := EulerToQuat(0.3, -0.2, 0.7)
	r := q.Mul(QuatIdentity())
	if math.Abs(r.X-q.X) > 1e-12 || math.Abs(r.W-q.W) > 1e-12 {
		t.Errorf("identity multiplication changed quaternion: %+v vs %+v", r, q)
	}
}
