package integrator

import (
	"math"

	"github.com/achilleasa/pbr/types"
)

// A source of uniformly distributed numbers in [0, 1). *rand.Rand satisfies
// this interface.
type RandomSource interface {
	Float64() float64
}

// Build an orthonormal basis (u, v, w) around the unit vector w. The helper
// axis is world X unless w is too close to it.
func OrthonormalBasis(w types.Vec3) (u, v types.Vec3) {
	axis := types.XYZ(1, 0, 0)
	if math.Abs(w[0]) > 0.1 {
		axis = types.XYZ(0, 1, 0)
	}

	u = axis.Cross(w).Normalize()
	v = w.Cross(u)
	return u, v
}

// Map two uniform samples to a cosine-weighted direction in the hemisphere
// around the unit normal. r1 selects the elevation and r2 the azimuth.
func CosineHemisphere(normal types.Vec3, r1, r2 float64) types.Vec3 {
	u, v := OrthonormalBasis(normal)

	phi := 2 * math.Pi * r2
	radius := math.Sqrt(r1)
	lx := radius * math.Cos(phi)
	ly := radius * math.Sin(phi)
	lz := math.Sqrt(1 - r1)

	return u.Mul(lx).Add(v.Mul(ly)).Add(normal.Mul(lz))
}

// Draw an offset in (-1, 1) from a triangular (tent) distribution peaking
// at zero.
func Tent(rnd RandomSource) float64 {
	return tentOffset(rnd.Float64())
}

func tentOffset(r float64) float64 {
	n := 2 * r
	if n < 1 {
		return math.Sqrt(n) - 1
	}
	return 1 - math.Sqrt(2-n)
}
