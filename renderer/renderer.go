package renderer

import (
	"context"

	"github.com/achilleasa/pbr/frame"
)

type Renderer interface {
	// Render frame.
	Render(ctx context.Context) (*frame.Buffer, error)

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}
