package renderer

import "time"

type BlockStat struct {
	// The id of the tracer that rendered the block.
	TracerId string

	// The block position, height and the percentage of total frame area it represents.
	BlockY       uint32
	BlockH       uint32
	FramePercent float32

	// The number of primary rays traced for the block.
	PrimaryRays uint64

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual block stats in rendering order.
	Blocks []BlockStat

	// Total number of primary rays.
	PrimaryRays uint64

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Get the primary ray throughput in rays per second.
func (s FrameStats) RaysPerSecond() float64 {
	if s.RenderTime <= 0 {
		return 0
	}
	return float64(s.PrimaryRays) / s.RenderTime.Seconds()
}
