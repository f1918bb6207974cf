package scene

import (
	"fmt"
	"sort"

	"github.com/achilleasa/pbr/types"
)

// A named scene builder.
type Preset struct {
	Name        string
	Description string

	// Build the preset scene for a frame of the given dimensions.
	Build func(frameW, frameH uint32) (*Scene, error)
}

var (
	// Registered scene presets indexed by name.
	Presets = map[string]Preset{
		"cornell": {
			Name:        "cornell",
			Description: "Cornell box built from large spheres, lit by a spherical ceiling light",
			Build:       CornellSpheres,
		},
		"spheres": {
			Name:        "spheres",
			Description: "Three diffuse spheres on a ground plane under an open sky",
			Build:       SkySpheres,
		},
	}
)

// Get the sorted list of preset names.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup a preset by name and build it.
func BuildPreset(name string, frameW, frameH uint32) (*Scene, error) {
	preset, exists := Presets[name]
	if !exists {
		return nil, fmt.Errorf("scene: unknown preset %q", name)
	}
	return preset.Build(frameW, frameH)
}

// Build a Cornell box where walls, floor and ceiling are approximated by
// spheres large enough to appear flat from the camera.
func CornellSpheres(frameW, frameH uint32) (*Scene, error) {
	camera := NewCamera(frameW, frameH)
	camera.MoveTo(types.XYZ(0, 0.1, 2))
	camera.LookAt(types.XYZ(0, 0.1, 0))

	red := Diffuse(types.XYZ(0.75, 0.25, 0.25))
	blue := Diffuse(types.XYZ(0.25, 0.25, 0.75))
	white := Diffuse(types.XYZ(0.9, 0.8, 0.7))

	sc := NewScene()
	sc.SetCamera(camera)
	return sc, addAll(sc,
		NewSphere(types.XYZ(-200.6, 0, 0), 200, red),
		NewSphere(types.XYZ(200.6, 0, 0), 200, blue),
		NewSphere(types.XYZ(0, -200.4, 0), 200, white),
		NewSphere(types.XYZ(0, 200.4, 0), 200, white),
		NewSphere(types.XYZ(0, 0, -200.4), 200, white),
		NewSphere(types.XYZ(0, 0, 202), 200, white),
		NewSphere(types.XYZ(-0.25, -0.24, -0.1), 0.16, white),
		NewSphere(types.XYZ(0.25, -0.24, 0.1), 0.16, white),
		NewSphere(types.XYZ(0, 1.36, 0), 1, Light(types.XYZ(9, 8, 6))),
	)
}

// Build an outdoor scene with three spheres resting on a ground plane. The
// only light source is the background sky.
func SkySpheres(frameW, frameH uint32) (*Scene, error) {
	camera := NewCamera(frameW, frameH)
	camera.MoveTo(types.XYZ(0, 2, -8))
	camera.LookAt(types.XYZ(0, 0, 1))

	sc := NewScene()
	sc.SetCamera(camera)
	return sc, addAll(sc,
		NewSphere(types.XYZ(0, 0, 1), 0.5, Diffuse(types.XYZ(0.8, 0.3, 0.3))),
		NewSphere(types.XYZ(2, 0, 2), 0.5, Diffuse(types.XYZ(0.3, 0.8, 0.3))),
		NewSphere(types.XYZ(-2, 0, 2), 0.5, Diffuse(types.XYZ(0.3, 0.3, 0.8))),
		NewPlane(types.XYZ(0, -0.5, 0), types.XYZ(0, 1, 0), Diffuse(types.XYZ(0.5, 0.5, 0.5))),
	)
}

func addAll(sc *Scene, primitives ...Primitive) error {
	for _, prim := range primitives {
		if _, err := sc.AddPrimitive(prim); err != nil {
			return err
		}
	}
	return nil
}
