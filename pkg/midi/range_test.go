package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuarterRange(t *testing.T) {
	r := newQuarterRange(480)
	r.stepBy(2)

	assert.Equal(t, uint64(2), r.cnt)
	assert.Equal(t, uint64(960), r.lowerBound)
	assert.Equal(t, uint64(1440), r.upperBound)
	assert.True(t, r.contains(960))
	assert.False(t, r.contains(1440))
	assert.Equal(t, 2, r.position())
}

func TestQuarterPosition(t *testing.T) {
	tests := []struct {
		tick uint32
		want int
	}{
		{0, 0},
		{479, 0},
		{480, 1},
		{960, 2},
		{1440, 3},
		{1919, 3},
		{1920, 0},
		{2400, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuarterPosition(tt.tick, 480), "tick %d", tt.tick)
	}

	assert.Equal(t, 0, QuarterPosition(960, 0))
}
