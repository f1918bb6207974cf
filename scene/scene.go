package scene

import (
	"errors"
	"fmt"

	"github.com/achilleasa/pbr/types"
)

var (
	ErrInvalidPrimitive = errors.New("scene: invalid primitive")
)

type Scene struct {
	Camera *Camera

	// Scene primitives in insertion order. Intersections refer to
	// primitives by their index in this list.
	Primitives []Primitive

	// Preferred output frame dimensions; zero when unspecified.
	FrameW uint32
	FrameH uint32
}

func NewScene() *Scene {
	return &Scene{
		Primitives: make([]Primitive, 0),
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a primitive to the scene and return its index.
func (s *Scene) AddPrimitive(primitive Primitive) (int, error) {
	if err := primitive.validate(); err != nil {
		return -1, err
	}
	s.Primitives = append(s.Primitives, primitive)
	return len(s.Primitives) - 1, nil
}

// Get the number of primitives in the scene.
func (s *Scene) Len() int {
	return len(s.Primitives)
}

// Get the primitive at the given index.
func (s *Scene) Primitive(index int) *Primitive {
	return &s.Primitives[index]
}

// Get the material of the primitive referenced by an intersection.
func (s *Scene) Material(hit Intersection) Material {
	return s.Primitives[hit.Primitive].Mat
}

// Find the closest primitive hit by the ray. Primitives are tested in a
// linear scan; the winner depends only on the hit distance so the result does
// not depend on insertion order.
func (s *Scene) Intersect(ray types.Ray) (Intersection, bool) {
	var closest Intersection
	found := false

	for idx := range s.Primitives {
		hit, ok := s.Primitives[idx].Intersect(ray)

		// Negated comparison so that NaN distances are skipped too
		if !ok || !(hit.Distance >= 0) {
			continue
		}

		if !found || hit.Distance < closest.Distance {
			hit.Primitive = idx
			closest = hit
			found = true
		}
	}

	return closest, found
}

// Describe scene contents.
func (s *Scene) String() string {
	var spheres, planes, lights int
	for _, prim := range s.Primitives {
		switch prim.Type {
		case SpherePrimitive:
			spheres++
		case PlanePrimitive:
			planes++
		}
		if prim.Mat.IsEmissive() {
			lights++
		}
	}
	return fmt.Sprintf("%d primitives (%d spheres, %d planes, %d emissive)", len(s.Primitives), spheres, planes, lights)
}
