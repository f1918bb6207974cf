package integrator

import (
	"github.com/achilleasa/pbr/scene"
	"github.com/achilleasa/pbr/types"
)

const (
	// Default number of diffuse bounces before paths are terminated.
	DefaultMaxDepth = 4

	// Distance along the surface normal used to offset bounce ray origins.
	BounceOffset = 1e-4
)

var (
	skyWhite = types.XYZ(1, 1, 1)
	skyBlue  = types.XYZ(0.5, 0.7, 1.0)
)

// Get the radiance of rays that escape the scene: a vertical gradient from
// white at the horizon below to sky blue overhead.
func Background(dir types.Vec3) types.Vec3 {
	t := 0.5 * (dir[1] + 1)
	return skyWhite.Mul(1 - t).Add(skyBlue.Mul(t))
}

// A recursive path tracer for purely diffuse scenes. Each hit spawns a single
// cosine-weighted bounce ray.
type PathTracer struct {
	// Hits at a depth greater than this value only contribute their
	// emission.
	MaxDepth int
}

// Create a path tracer. Non-positive depths select DefaultMaxDepth.
func NewPathTracer(maxDepth int) PathTracer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return PathTracer{MaxDepth: maxDepth}
}

// Estimate the radiance arriving along ray. Primary rays start at depth 0.
func (pt PathTracer) Trace(sc *scene.Scene, ray types.Ray, depth int, rnd RandomSource) types.Vec3 {
	hit, ok := sc.Intersect(ray)
	if !ok {
		return Background(ray.Dir)
	}

	mat := sc.Primitive(hit.Primitive).Material()
	if depth > pt.MaxDepth {
		return mat.Emission
	}

	r1 := rnd.Float64()
	r2 := rnd.Float64()
	bounce := types.NewRay(
		hit.Point.Add(hit.Normal.Mul(BounceOffset)),
		CosineHemisphere(hit.Normal, r1, r2),
	)

	incoming := pt.Trace(sc, bounce, depth+1, rnd)
	return mat.Emission.Add(mat.Albedo.MulVec(incoming))
}
