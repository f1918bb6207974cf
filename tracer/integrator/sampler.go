package integrator

import (
	"github.com/achilleasa/pbr/frame"
	"github.com/achilleasa/pbr/scene"
	"github.com/achilleasa/pbr/types"
)

const (
	// Default subpixel grid size along each axis.
	DefaultSubdivisions = 2
)

// Estimates pixel colors by tracing jittered rays through a grid of
// subpixels.
type PixelSampler struct {
	// Subpixel grid size along each axis.
	Subdivisions int

	// Number of samples per subpixel.
	Samples int

	Tracer PathTracer
}

// Create a pixel sampler with a 2x2 subpixel grid.
func NewPixelSampler(samples, maxDepth int) *PixelSampler {
	return &PixelSampler{
		Subdivisions: DefaultSubdivisions,
		Samples:      samples,
		Tracer:       NewPathTracer(maxDepth),
	}
}

// Estimate the radiance of pixel (x, y) for a width x height frame. The
// origin policy decides whether row 0 is the top or bottom image row.
func (ps *PixelSampler) Sample(sc *scene.Scene, x, y, width, height int, origin frame.Origin, rnd RandomSource) types.Vec3 {
	cam := sc.Camera
	scale := cam.PlaneScale()
	subdivs := float64(ps.Subdivisions)

	var sum types.Vec3
	for sy := 0; sy < ps.Subdivisions; sy++ {
		for sx := 0; sx < ps.Subdivisions; sx++ {
			for s := 0; s < ps.Samples; s++ {
				dx := Tent(rnd)
				dy := Tent(rnd)

				u := ((float64(sx)+0.5+dx)/subdivs+float64(x))/float64(width) - 0.5
				v := origin.PlaneV(((float64(sy)+0.5+dy)/subdivs + float64(y)) / float64(height))

				ray := cam.RayAt(u*scale, v*scale)
				sum = sum.Add(ps.Tracer.Trace(sc, ray, 0, rnd))
			}
		}
	}

	return sum.Div(float64(ps.Subdivisions * ps.Subdivisions * ps.Samples))
}
