package renderer

import (
	"context"
	"errors"
	"time"

	"github.com/achilleasa/pbr/frame"
	"github.com/achilleasa/pbr/log"
	"github.com/achilleasa/pbr/scene"
	"github.com/achilleasa/pbr/tracer"
)

// Renders frames by splitting them into row blocks and handing the blocks
// to a tracer one after the other.
type defaultRenderer struct {
	logger log.Logger

	sc        *scene.Scene
	scheduler tracer.BlockScheduler
	tracer    tracer.Tracer
	options   Options

	// Stats for last rendered frame.
	stats FrameStats
}

// Create a new renderer using the specified block scheduler and tracer. The
// scene camera projection is adjusted to match the frame dimensions.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, tr tracer.Tracer, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if tr == nil {
		return nil, ErrNoTracer
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if scheduler == nil {
		scheduler = tracer.NewFixedScheduler(opts.BlockHeight)
	}

	sc.Camera.SetupProjection(opts.FrameW, opts.FrameH)

	return &defaultRenderer{
		logger:    log.New("renderer"),
		sc:        sc,
		scheduler: scheduler,
		tracer:    tr,
		options:   opts,
	}, nil
}

// Get last frame stats.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Shutdown renderer and attached tracer.
func (r *defaultRenderer) Close() {
	if r.tracer != nil {
		r.tracer.Close()
		r.tracer = nil
	}
}

// Render a frame. If ctx is cancelled before the frame is complete, an error
// matching ErrInterrupted is returned together with the partially rendered
// frame.
func (r *defaultRenderer) Render(ctx context.Context) (*frame.Buffer, error) {
	if r.tracer == nil {
		return nil, ErrNoTracer
	}

	fb := frame.New(int(r.options.FrameW), int(r.options.FrameH), r.options.Origin)
	if err := r.tracer.Setup(r.sc, fb); err != nil {
		return nil, err
	}

	blockReqs := tracer.BlockRequests(
		r.scheduler.Schedule(r.options.FrameH),
		tracer.BlockRequest{
			SamplesPerPixel: r.options.SamplesPerPixel,
			MaxDepth:        r.options.MaxDepth,
			Seed:            r.options.Seed,
		},
	)

	r.logger.Infof(
		"rendering %dx%d frame (%d spp, max depth %d, %d blocks)",
		r.options.FrameW, r.options.FrameH, r.options.SamplesPerPixel, r.options.MaxDepth, len(blockReqs),
	)

	start := time.Now()
	stats := FrameStats{
		Blocks: make([]BlockStat, 0, len(blockReqs)),
	}
	var renderedRows uint32
	for _, req := range blockReqs {
		if err := r.tracer.Trace(ctx, req); err != nil {
			stats.RenderTime = time.Since(start)
			r.stats = stats
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				r.logger.Warningf("frame interrupted after %d of %d rows", renderedRows, r.options.FrameH)
				return fb, &interruptedError{cause: err}
			}
			return nil, err
		}

		trStats := r.tracer.Stats()
		stats.Blocks = append(stats.Blocks, BlockStat{
			TracerId:     r.tracer.Id(),
			BlockY:       req.BlockY,
			BlockH:       req.BlockH,
			FramePercent: 100.0 * float32(req.BlockH) / float32(r.options.FrameH),
			PrimaryRays:  trStats.PrimaryRays,
			RenderTime:   trStats.RenderTime,
		})
		stats.PrimaryRays += trStats.PrimaryRays
		renderedRows += req.BlockH

		r.logger.Debugf("progress: %d/%d rows", renderedRows, r.options.FrameH)
	}

	stats.RenderTime = time.Since(start)
	r.stats = stats
	r.logger.Noticef("rendered frame in %s", stats.RenderTime)
	return fb, nil
}
