package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/achilleasa/pbr/types"
)

func TestSphereIntersection(t *testing.T) {
	sphere := NewSphere(types.XYZ(0, 0, 1), 0.5, Diffuse(types.XYZ(1, 1, 1)))

	type spec struct {
		ray       types.Ray
		expHit    bool
		expDist   float64
		expNormal types.Vec3
	}

	specs := []spec{
		// Straight at the sphere
		{types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1)), true, 0.5, types.XYZ(0, 0, -1)},
		// Looking away from the sphere
		{types.NewRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)), false, 0, types.Vec3{}},
		{types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)), false, 0, types.Vec3{}},
		// From the sphere center; the far root is used and the normal faces the ray
		{types.NewRay(types.XYZ(0, 0, 1), types.XYZ(0, 0, 1)), true, 0.5, types.XYZ(0, 0, -1)},
		// Sphere completely behind the ray origin
		{types.NewRay(types.XYZ(0, 0, 3), types.XYZ(0, 0, 1)), false, 0, types.Vec3{}},
	}

	for index, s := range specs {
		hit, ok := sphere.Intersect(s.ray)
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, ok)
		}
		if !ok {
			continue
		}
		if math.Abs(hit.Distance-s.expDist) > 1e-9 {
			t.Fatalf("[spec %d] expected distance %f; got %f", index, s.expDist, hit.Distance)
		}
		if hit.Normal.Sub(s.expNormal).Len() > 1e-9 {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.expNormal, hit.Normal)
		}
		if hit.Point.Sub(s.ray.At(hit.Distance)).Len() > 1e-9 {
			t.Fatalf("[spec %d] expected hit point to lie on the ray; got %v", index, hit.Point)
		}
	}
}

func TestSphereRejectsHitsWithinEpsilon(t *testing.T) {
	sphere := NewSphere(types.XYZ(0, 0, 1), 0.5, Material{})

	// A ray leaving the sphere surface must not hit the surface it starts on.
	ray := types.NewRay(types.XYZ(0, 0, 0.5), types.XYZ(0, 0, -1))
	if hit, ok := sphere.Intersect(ray); ok {
		t.Fatalf("expected no hit; got distance %g", hit.Distance)
	}
}

func TestPlaneIntersection(t *testing.T) {
	type spec struct {
		plane     Primitive
		ray       types.Ray
		expHit    bool
		expDist   float64
		expNormal types.Vec3
	}

	floorUp := NewPlane(types.XYZ(0, -1, 0), types.XYZ(0, 1, 0), Material{})
	floorDown := NewPlane(types.XYZ(0, -1, 0), types.XYZ(0, -1, 0), Material{})

	specs := []spec{
		{floorUp, types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, -1, 0)), true, 1, types.XYZ(0, 1, 0)},
		// Normal pointing away from the ray origin gets flipped
		{floorDown, types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, -1, 0)), true, 1, types.XYZ(0, 1, 0)},
		// Hit from below
		{floorUp, types.NewRay(types.XYZ(0, -3, 0), types.XYZ(0, 1, 0)), true, 2, types.XYZ(0, -1, 0)},
		// Parallel
		{floorUp, types.NewRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)), false, 0, types.Vec3{}},
		// Plane behind the ray
		{floorUp, types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0)), false, 0, types.Vec3{}},
		// Origin on the plane
		{floorUp, types.NewRay(types.XYZ(0, -1, 0), types.XYZ(0, -1, 0)), false, 0, types.Vec3{}},
	}

	for index, s := range specs {
		hit, ok := s.plane.Intersect(s.ray)
		if ok != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, ok)
		}
		if !ok {
			continue
		}
		if math.Abs(hit.Distance-s.expDist) > 1e-9 {
			t.Fatalf("[spec %d] expected distance %f; got %f", index, s.expDist, hit.Distance)
		}
		if hit.Normal != s.expNormal {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.expNormal, hit.Normal)
		}
	}
}

func TestNormalsFaceIncomingRay(t *testing.T) {
	prims := []Primitive{
		NewSphere(types.XYZ(0, 0, 0), 1, Material{}),
		NewPlane(types.XYZ(0, 0, 0), types.XYZ(0.3, 0.4, 0.5), Material{}),
		NewPlane(types.XYZ(0, 0, 0), types.XYZ(-0.3, -0.4, -0.5), Material{}),
	}

	origins := []types.Vec3{
		types.XYZ(0, 0, -5), types.XYZ(3, 2, 4), types.XYZ(0.1, 0.2, 0.1), types.XYZ(-2, -2, -2),
	}
	dirs := []types.Vec3{
		types.XYZ(0, 0, 1), types.XYZ(-3, -2, -4), types.XYZ(1, 1, 1), types.XYZ(0.4, 0.3, 0.2),
	}

	for pIndex := range prims {
		for oIndex, origin := range origins {
			ray := types.NewRay(origin, dirs[oIndex])
			hit, ok := prims[pIndex].Intersect(ray)
			if !ok {
				continue
			}
			if d := hit.Normal.Dot(ray.Dir); d > 0 {
				t.Fatalf("[prim %d, ray %d] expected normal to face the ray; got n·d = %f", pIndex, oIndex, d)
			}
			if l := hit.Normal.Len(); math.Abs(l-1) > 1e-9 {
				t.Fatalf("[prim %d, ray %d] expected unit normal; got length %f", pIndex, oIndex, l)
			}
		}
	}
}

func TestPrimitiveValidation(t *testing.T) {
	type spec struct {
		prim     Primitive
		expValid bool
	}

	specs := []spec{
		{NewSphere(types.XYZ(0, 0, 0), 1, Material{}), true},
		{NewSphere(types.XYZ(0, 0, 0), 0, Material{}), false},
		{NewSphere(types.XYZ(0, 0, 0), -1, Material{}), false},
		{NewSphere(types.XYZ(0, 0, 0), math.NaN(), Material{}), false},
		{NewSphere(types.XYZ(0, 0, 0), math.Inf(1), Material{}), false},
		{NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 2, 0), Material{}), true},
		{NewPlane(types.XYZ(0, 0, 0), types.XYZ(0, 0, 0), Material{}), false},
		{Primitive{Type: PrimitiveType(99), Radius: 1}, false},
	}

	for index, s := range specs {
		sc := NewScene()
		_, err := sc.AddPrimitive(s.prim)
		if s.expValid && err != nil {
			t.Fatalf("[spec %d] expected primitive to be accepted; got %v", index, err)
		}
		if !s.expValid && !errors.Is(err, ErrInvalidPrimitive) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, ErrInvalidPrimitive, err)
		}
	}
}
