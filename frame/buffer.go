package frame

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/achilleasa/pbr/types"
)

// Origin selects which buffer row the logical row index 0 refers to.
type Origin uint8

const (
	// Row 0 is the top image row.
	TopLeft Origin = iota

	// Row 0 is the bottom image row.
	BottomLeft
)

func (o Origin) String() string {
	switch o {
	case TopLeft:
		return "top"
	case BottomLeft:
		return "bottom"
	}
	return fmt.Sprintf("Origin(%d)", uint8(o))
}

// Parse an origin name ("top" or "bottom").
func ParseOrigin(name string) (Origin, error) {
	switch name {
	case "top", "top-left":
		return TopLeft, nil
	case "bottom", "bottom-left":
		return BottomLeft, nil
	}
	return TopLeft, fmt.Errorf("frame: unknown row origin %q", name)
}

// Map a normalized logical row coordinate in [0, 1] to the vertical image
// plane offset expected by Camera.RayAt.
func (o Origin) PlaneV(f float64) float64 {
	if o == BottomLeft {
		return f - 0.5
	}
	return 0.5 - f
}

// An 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// Convert linear radiance into a display color. Channels are clamped to
// [0, 1] and gamma corrected.
func ToneMap(c types.Vec3) RGB {
	c = c.Clamp(0, 1)
	return RGB{
		R: toByte(c[0]),
		G: toByte(c[1]),
		B: toByte(c[2]),
	}
}

func toByte(c float64) uint8 {
	if math.IsNaN(c) {
		return 0
	}
	return uint8(math.Pow(c, 1/2.2)*255 + 0.5)
}

// A packed RGB frame buffer. Pixels are always stored top row first.
type Buffer struct {
	Width  int
	Height int
	Origin Origin
	Pix    []uint8
}

// Create a zeroed (black) frame buffer.
func New(width, height int, origin Origin) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Origin: origin,
		Pix:    make([]uint8, 3*width*height),
	}
}

// Get the number of pixels in the buffer.
func (b *Buffer) Len() int {
	return b.Width * b.Height
}

func (b *Buffer) offset(x, y int) int {
	row := y
	if b.Origin == BottomLeft {
		row = b.Height - 1 - y
	}
	return 3 * (row*b.Width + x)
}

// Set the color of pixel (x, y).
func (b *Buffer) Set(x, y int, c RGB) {
	off := b.offset(x, y)
	b.Pix[off] = c.R
	b.Pix[off+1] = c.G
	b.Pix[off+2] = c.B
}

// Get the color of pixel (x, y).
func (b *Buffer) Get(x, y int) RGB {
	off := b.offset(x, y)
	return RGB{b.Pix[off], b.Pix[off+1], b.Pix[off+2]}
}

// Write the buffer as a binary (P6) PPM image.
func (b *Buffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6 %d %d 255\n", b.Width, b.Height); err != nil {
		return err
	}
	if _, err := bw.Write(b.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

// Convert the buffer into an image.RGBA.
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for src, dst := 0, 0; src < len(b.Pix); src, dst = src+3, dst+4 {
		img.Pix[dst] = b.Pix[src]
		img.Pix[dst+1] = b.Pix[src+1]
		img.Pix[dst+2] = b.Pix[src+2]
		img.Pix[dst+3] = 255
	}
	return img
}
