package tracer

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into consecutive blocks of rows and return the height
	// of each block. The heights always add up to frameH.
	Schedule(frameH uint32) []uint32
}

// Splits the frame into blocks of a fixed height. The last block receives
// the leftover rows.
type fixedScheduler struct {
	blockH uint32
}

// Create a new scheduler that emits blocks with blockH rows. A zero block
// height renders the whole frame as a single block.
func NewFixedScheduler(blockH uint32) BlockScheduler {
	return &fixedScheduler{blockH: blockH}
}

func (sch *fixedScheduler) Schedule(frameH uint32) []uint32 {
	if frameH == 0 {
		return nil
	}
	if sch.blockH == 0 || sch.blockH >= frameH {
		return []uint32{frameH}
	}

	blocks := make([]uint32, 0, (frameH+sch.blockH-1)/sch.blockH)
	for remaining := frameH; remaining > 0; {
		h := sch.blockH
		if remaining < h {
			h = remaining
		}
		blocks = append(blocks, h)
		remaining -= h
	}
	return blocks
}

// Convert block heights into block requests that share the same render
// settings.
func BlockRequests(heights []uint32, template BlockRequest) []BlockRequest {
	reqs := make([]BlockRequest, len(heights))
	var y uint32
	for idx, h := range heights {
		reqs[idx] = template
		reqs[idx].BlockY = y
		reqs[idx].BlockH = h
		y += h
	}
	return reqs
}
