package midi

const quartersPerBar = 4

type quarterRange struct {
	cnt uint64

	lowerBound uint64
	upperBound uint64
}

func newQuarterRange(ticksPerQuarter uint64) *quarterRange {
	return &quarterRange{upperBound: ticksPerQuarter}
}

func (r *quarterRange) stepBy(n uint64) {
	r.cnt += n
	step := r.upperBound - r.lowerBound

	r.upperBound += step * n
	r.lowerBound += step * n
}

func (r *quarterRange) contains(tick uint64) bool {
	return tick >= r.lowerBound && tick < r.upperBound
}

func (r *quarterRange) position() int {
	return int(r.cnt % quartersPerBar)
}

// QuarterPosition returns which quarter (0-3) of a 4/4 bar absTick falls in.
// It returns 0 when ticksPerQuarter is 0, as for SMPTE timed files.
func QuarterPosition(absTick uint32, ticksPerQuarter uint16) int {
	if ticksPerQuarter == 0 {
		return 0
	}

	tick := uint64(absTick)
	r := newQuarterRange(uint64(ticksPerQuarter))

	for !r.contains(tick) {
		step := (tick - r.lowerBound) / uint64(ticksPerQuarter)
		if step == 0 {
			step = 1
		}
		r.stepBy(step)
	}

	return r.position()
}
