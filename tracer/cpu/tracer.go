package cpu

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/achilleasa/pbr/frame"
	"github.com/achilleasa/pbr/log"
	"github.com/achilleasa/pbr/scene"
	"github.com/achilleasa/pbr/tracer"
	"github.com/achilleasa/pbr/tracer/integrator"
)

var (
	ErrNotSetup     = errors.New("cpu tracer: Setup must be called before Trace")
	ErrInvalidBlock = errors.New("cpu tracer: block exceeds frame bounds")
)

// A single-threaded tracer that renders blocks of rows on the calling
// goroutine.
type cpuTracer struct {
	logger log.Logger

	// The tracer id.
	id string

	sc *scene.Scene
	fb *frame.Buffer

	// Statistics for the last rendered block.
	stats *tracer.Stats
}

// Create a new cpu tracer.
func NewTracer(id string) tracer.Tracer {
	return &cpuTracer{
		logger: log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:     id,
		stats:  &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.sc = nil
	tr.fb = nil
}

// Attach scene and output frame buffer.
func (tr *cpuTracer) Setup(sc *scene.Scene, fb *frame.Buffer) error {
	if sc == nil || sc.Camera == nil || fb == nil {
		return fmt.Errorf("cpu tracer: scene, camera and frame buffer are required")
	}
	tr.sc = sc
	tr.fb = fb
	tr.logger.Debugf("setup complete; %s; frame %dx%d", sc, fb.Width, fb.Height)
	return nil
}

// Retrieve statistics for the last traced block.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Render the requested rows into the frame buffer.
func (tr *cpuTracer) Trace(ctx context.Context, req tracer.BlockRequest) error {
	if tr.sc == nil || tr.fb == nil {
		return ErrNotSetup
	}
	if int(req.BlockY)+int(req.BlockH) > tr.fb.Height {
		return fmt.Errorf("%w: rows [%d, %d) in a frame with %d rows", ErrInvalidBlock, req.BlockY, req.BlockY+req.BlockH, tr.fb.Height)
	}

	start := time.Now()
	sampler := integrator.NewPixelSampler(int(req.SamplesPerPixel), int(req.MaxDepth))
	width, height := tr.fb.Width, tr.fb.Height
	primaryRaysPerPixel := uint64(sampler.Subdivisions * sampler.Subdivisions * sampler.Samples)

	var primaryRays uint64
	for y := int(req.BlockY); y < int(req.BlockY+req.BlockH); y++ {
		rnd := rand.New(rand.NewSource(RowSeed(req.Seed, y)))
		for x := 0; x < width; x++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			radiance := sampler.Sample(tr.sc, x, y, width, height, tr.fb.Origin, rnd)
			tr.fb.Set(x, y, frame.ToneMap(radiance))
			primaryRays += primaryRaysPerPixel
		}
	}

	tr.stats = &tracer.Stats{
		BlockY:      req.BlockY,
		BlockH:      req.BlockH,
		PrimaryRays: primaryRays,
		RenderTime:  time.Since(start),
	}
	tr.logger.Debugf("rendered rows [%d, %d) in %s", req.BlockY, req.BlockY+req.BlockH, tr.stats.RenderTime)
	return nil
}

// Derive the random seed for a logical frame row. Rows own independent
// generators so that the output does not depend on how rows are grouped
// into blocks.
func RowSeed(seed int64, row int) int64 {
	return seed*1000003 + int64(row)
}
