package scene

import "github.com/achilleasa/pbr/types"

// Defines a diffuse scene material.
type Material struct {
	// Diffuse reflectance per color channel (ideally in [0, 1]).
	Albedo types.Vec3

	// Emitted radiance. Zero for surfaces that are not light sources.
	Emission types.Vec3
}

// Create a non-emissive diffuse material.
func Diffuse(albedo types.Vec3) Material {
	return Material{Albedo: albedo}
}

// Create a light source material that does not reflect any light.
func Light(emission types.Vec3) Material {
	return Material{Emission: emission}
}

// Returns true if the material emits light.
func (m Material) IsEmissive() bool {
	return m.Emission != types.Vec3{}
}
