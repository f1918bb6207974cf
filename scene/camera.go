package scene

import (
	"fmt"
	"math"

	"github.com/achilleasa/pbr/types"
)

var (
	// The world up vector used for deriving the camera basis.
	WorldUp = types.XYZ(0, 1, 0)
)

// A pinhole camera. The image plane sits one unit in front of the camera
// position and is spanned by the Right and Up basis vectors.
type Camera struct {
	Position types.Vec3

	// Orthonormal camera basis.
	Forward types.Vec3
	Right   types.Vec3
	Up      types.Vec3

	// Frame height / frame width; scales the vertical image plane offset.
	AspectRatio float64

	// Horizontal field of view in degrees. When zero the image plane is
	// left unscaled.
	FOV float64
}

// Create a camera at the origin looking down the +Z axis.
func NewCamera(frameW, frameH uint32) *Camera {
	c := &Camera{}
	c.SetupProjection(frameW, frameH)
	c.LookAt(types.XYZ(0, 0, 1))
	return c
}

// Match the image plane aspect ratio to the output frame dimensions.
func (c *Camera) SetupProjection(frameW, frameH uint32) {
	c.AspectRatio = float64(frameH) / float64(frameW)
}

// Orient the camera so that it looks at target. The target must not coincide
// with the camera position nor lie directly above or below it.
func (c *Camera) LookAt(target types.Vec3) {
	c.Forward = target.Sub(c.Position).Normalize()
	c.Right = c.Forward.Cross(WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Forward).Normalize()
}

// Move the camera without changing its orientation.
func (c *Camera) MoveTo(point types.Vec3) {
	c.Position = point
}

// Set the horizontal field of view in degrees.
func (c *Camera) SetFieldOfView(degrees float64) {
	c.FOV = degrees
}

// Get the factor applied to image plane offsets before calling RayAt.
func (c *Camera) PlaneScale() float64 {
	if c.FOV <= 0 {
		return 1.0
	}
	return 2 * math.Tan(c.FOV*math.Pi/360)
}

// Generate a ray through the image plane. Offsets u and v are conventionally
// in [-0.5, 0.5] with (0, 0) at the center of the image.
func (c *Camera) RayAt(u, v float64) types.Ray {
	dir := c.Forward.
		Add(c.Right.Mul(u)).
		Add(c.Up.Mul(v * c.AspectRatio))

	return types.NewRay(c.Position, dir)
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera:\nPosition : (%3.3f, %3.3f, %3.3f)\nForward  : (%3.3f, %3.3f, %3.3f)\nRight    : (%3.3f, %3.3f, %3.3f)\nUp       : (%3.3f, %3.3f, %3.3f)",
		c.Position[0], c.Position[1], c.Position[2],
		c.Forward[0], c.Forward[1], c.Forward[2],
		c.Right[0], c.Right[1], c.Right[2],
		c.Up[0], c.Up[1], c.Up[2],
	)
}
