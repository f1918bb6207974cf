package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/pbr/types"
)

const (
	// Hits closer than this distance are discarded so that rays leaving a
	// surface do not immediately re-intersect it.
	IntersectEpsilon = 0.0005
)

type PrimitiveType uint8

const (
	PlanePrimitive PrimitiveType = iota
	SpherePrimitive
)

func (t PrimitiveType) String() string {
	switch t {
	case PlanePrimitive:
		return "plane"
	case SpherePrimitive:
		return "sphere"
	}
	return fmt.Sprintf("PrimitiveType(%d)", uint8(t))
}

// Defines a scene primitive.
type Primitive struct {
	// The primitive type.
	Type PrimitiveType

	// Sphere center or a point on the plane.
	Origin types.Vec3

	// Unit plane normal (planes only).
	Normal types.Vec3

	// Sphere radius (spheres only).
	Radius float64

	// The primitive material.
	Mat Material
}

// The result of a successful ray-primitive intersection test.
type Intersection struct {
	// Distance along the ray; always greater than IntersectEpsilon.
	Distance float64

	// Hit point and unit surface normal. The normal always faces
	// against the incoming ray direction.
	Point  types.Vec3
	Normal types.Vec3

	// Index of the hit primitive in the scene primitive list.
	Primitive int
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float64, mat Material) Primitive {
	return Primitive{
		Type:   SpherePrimitive,
		Origin: center,
		Radius: radius,
		Mat:    mat,
	}
}

// Create new plane primitive passing through point. The normal is normalized.
func NewPlane(point, normal types.Vec3, mat Material) Primitive {
	return Primitive{
		Type:   PlanePrimitive,
		Origin: point,
		Normal: normal.Normalize(),
		Mat:    mat,
	}
}

// Get the primitive material.
func (p *Primitive) Material() Material {
	return p.Mat
}

// Intersect the primitive with a ray. The Primitive field of the returned
// intersection is left for the scene to fill in.
func (p *Primitive) Intersect(ray types.Ray) (Intersection, bool) {
	switch p.Type {
	case SpherePrimitive:
		return p.intersectSphere(ray)
	case PlanePrimitive:
		return p.intersectPlane(ray)
	}
	return Intersection{}, false
}

func (p *Primitive) intersectSphere(ray types.Ray) (Intersection, bool) {
	toCenter := p.Origin.Sub(ray.Origin)
	distToCenterSq := toCenter.Dot(toCenter)
	distAlongRay := toCenter.Dot(ray.Dir)

	discriminant := p.Radius*p.Radius - distToCenterSq + distAlongRay*distAlongRay
	if discriminant < 0 {
		return Intersection{}, false
	}

	discSqrt := math.Sqrt(discriminant)
	var distance float64
	if near := distAlongRay - discSqrt; near > IntersectEpsilon {
		distance = near
	} else if far := distAlongRay + discSqrt; far > IntersectEpsilon {
		distance = far
	} else {
		return Intersection{}, false
	}

	point := ray.At(distance)

	// Dividing by the radius is enough to get a unit normal
	normal := point.Sub(p.Origin).Div(p.Radius)
	if normal.Dot(ray.Dir) > 0 {
		normal = normal.Neg()
	}

	return Intersection{
		Distance: distance,
		Point:    point,
		Normal:   normal,
	}, true
}

func (p *Primitive) intersectPlane(ray types.Ray) (Intersection, bool) {
	denom := p.Normal.Dot(ray.Dir)
	if denom == 0 {
		return Intersection{}, false
	}

	distance := (p.Normal.Dot(p.Origin) - p.Normal.Dot(ray.Origin)) / denom
	if !(distance > IntersectEpsilon) {
		return Intersection{}, false
	}

	normal := p.Normal
	if denom > 0 {
		normal = normal.Neg()
	}

	return Intersection{
		Distance: distance,
		Point:    ray.At(distance),
		Normal:   normal,
	}, true
}

// Check that the primitive can be intersected.
func (p *Primitive) validate() error {
	switch p.Type {
	case SpherePrimitive:
		if !(p.Radius > 0) || math.IsInf(p.Radius, 0) {
			return fmt.Errorf("%w: sphere radius must be a positive finite number; got %v", ErrInvalidPrimitive, p.Radius)
		}
	case PlanePrimitive:
		l := p.Normal.Len()
		if !(l > 0) || math.IsInf(l, 0) {
			return fmt.Errorf("%w: plane normal must be a non-zero vector; got %v", ErrInvalidPrimitive, p.Normal)
		}
	default:
		return fmt.Errorf("%w: unsupported primitive type %s", ErrInvalidPrimitive, p.Type)
	}
	return nil
}
