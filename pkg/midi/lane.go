package midi

// RestPitch marks a Note that is silence.
const RestPitch uint8 = 128

type Note struct {
	Pitch    uint8  `json:"pitch"`
	Duration uint32 `json:"duration"`
}

func (n Note) IsRest() bool {
	return n.Pitch == RestPitch
}

// Lane is a monophonic voice: notes and rests that never overlap.
type Lane []Note

// Duration is the tick sum of every note and rest in the lane.
func (l Lane) Duration() uint32 {
	var d uint32
	for _, n := range l {
		d += n.Duration
	}
	return d
}

// Walk calls fn for every note with its absolute start tick.
func (l Lane) Walk(fn func(start uint32, n Note)) {
	var tick uint32
	for _, n := range l {
		fn(tick, n)
		tick += n.Duration
	}
}

// Track is the reconstruction of one track chunk.
type Track struct {
	Name string `json:"name"`
	// Tempo in microseconds per quarter note, 0 if the track carries none.
	Tempo uint32 `json:"tempo"`
	// Duration in ticks up to the end of track event.
	Duration uint32 `json:"duration"`
	Lanes    []Lane `json:"lanes"`
}

func (t *Track) Voices() int {
	return len(t.Lanes)
}
