package renderer

import (
	"fmt"

	"github.com/achilleasa/pbr/frame"
	"github.com/achilleasa/pbr/tracer/integrator"
)

const (
	DefaultFrameW          = 512
	DefaultFrameH          = 512
	DefaultSamplesPerPixel = 16
	DefaultBlockHeight     = 16

	// Upper bound for MaxDepth; paths are traced recursively.
	MaxPathDepth = 64
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples for each of the 2x2 subpixels.
	SamplesPerPixel uint32

	// Number of diffuse bounces before paths are terminated.
	MaxDepth uint32

	// Seed for the per-row random number generators. Renders with the
	// same seed and options are byte-identical.
	Seed int64

	// Number of rows per tracer block. Zero renders the frame as a single block.
	BlockHeight uint32

	// Row addressing policy shared by the frame buffer and the pixel sampler.
	Origin frame.Origin
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		FrameW:          DefaultFrameW,
		FrameH:          DefaultFrameH,
		SamplesPerPixel: DefaultSamplesPerPixel,
		MaxDepth:        integrator.DefaultMaxDepth,
		BlockHeight:     DefaultBlockHeight,
		Origin:          frame.TopLeft,
	}
}

// Check that the options describe a renderable frame.
func (o Options) Validate() error {
	if o.FrameW == 0 || o.FrameH == 0 {
		return fmt.Errorf("%w: frame dimensions must be positive; got %dx%d", ErrInvalidOptions, o.FrameW, o.FrameH)
	}
	if o.SamplesPerPixel == 0 {
		return fmt.Errorf("%w: samples per pixel must be positive", ErrInvalidOptions)
	}
	if o.MaxDepth == 0 {
		return fmt.Errorf("%w: max depth must be positive", ErrInvalidOptions)
	}
	if o.MaxDepth > MaxPathDepth {
		return fmt.Errorf("%w: max depth must not exceed %d; got %d", ErrInvalidOptions, MaxPathDepth, o.MaxDepth)
	}
	if o.Origin != frame.TopLeft && o.Origin != frame.BottomLeft {
		return fmt.Errorf("%w: unsupported row origin %s", ErrInvalidOptions, o.Origin)
	}
	return nil
}
