package tracer

import (
	"context"
	"time"

	"github.com/achilleasa/pbr/frame"
	"github.com/achilleasa/pbr/scene"
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// The number of samples per subpixel.
	SamplesPerPixel uint32

	// Paths are terminated after this many diffuse bounces.
	MaxDepth uint32

	// A random seed value for the tracer's random number generators.
	Seed int64
}

// Tracer statistics.
type Stats struct {
	// The last rendered block.
	BlockY uint32
	BlockH uint32

	// The number of primary rays traced for the block.
	PrimaryRays uint64

	// The time for rendering this block.
	RenderTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown and cleanup tracer.
	Close()

	// Attach the scene to be rendered and the frame buffer that receives
	// the tone-mapped pixels.
	Setup(sc *scene.Scene, fb *frame.Buffer) error

	// Render a block of rows into the frame buffer. Implementations must
	// return ctx.Err() if the context is cancelled before the block is
	// complete.
	Trace(ctx context.Context, req BlockRequest) error

	// Retrieve statistics for the last traced block.
	Stats() *Stats
}
