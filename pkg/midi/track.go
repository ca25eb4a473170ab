package midi

const pitchCount = 128

type activeNote struct {
	on    bool
	lane  int
	start uint32
}

// TrackReader rebuilds voice lanes from the events of a single track chunk.
// Every sounding pitch is placed on the smallest lane that is free at its
// start, so lanes stay monophonic and gaps between notes become rests.
type TrackReader struct {
	// CloseDanglingNotes ends notes still sounding at end of track instead of
	// dropping them.
	CloseDanglingNotes bool

	tick     uint32
	lanes    []Lane
	lastTick []uint32
	active   []activeNote
	free     *lanePool

	name     string
	tempo    uint32
	duration uint32
	finished bool
}

func NewTrackReader() *TrackReader {
	return &TrackReader{
		active: make([]activeNote, pitchCount),
		free:   &lanePool{},
	}
}

// Apply feeds one event to the reader. Events after end of track are ignored.
func (t *TrackReader) Apply(e *Event) {
	if t.finished {
		return
	}

	t.tick += e.TimeDelta

	switch {
	case e.IsMeta():
		t.applyMeta(e)
	case len(e.Data) < 2:
	case e.MsgType() == msgNoteOn:
		if e.Data[1] == 0 {
			t.endNote(e.Data[0])
		} else {
			t.startNote(e.Data[0])
		}
	case e.MsgType() == msgNoteOff:
		t.endNote(e.Data[0])
	}
}

func (t *TrackReader) applyMeta(e *Event) {
	switch e.MetaType() {
	case metaTrackName:
		t.name = string(e.Payload())
	case metaEndOfTrack:
		t.endTrack()
	case metaTempo:
		var tempo uint32
		for _, b := range e.Payload() {
			tempo = tempo<<8 | uint32(b)
		}
		t.tempo = tempo
	}
}

func (t *TrackReader) startNote(pitch uint8) {
	if int(pitch) >= pitchCount || t.active[pitch].on {
		return
	}

	if t.free.Len() == 0 {
		t.lanes = append(t.lanes, Lane{})
		t.lastTick = append(t.lastTick, 0)
		t.free.put(len(t.lanes) - 1)
	}

	t.active[pitch] = activeNote{on: true, lane: t.free.take(), start: t.tick}
}

func (t *TrackReader) endNote(pitch uint8) {
	if int(pitch) >= pitchCount || !t.active[pitch].on {
		return
	}

	n := t.active[pitch]
	if gap := t.lastTick[n.lane]; gap < n.start {
		t.lanes[n.lane] = append(t.lanes[n.lane], Note{Pitch: RestPitch, Duration: n.start - gap})
	}
	t.lanes[n.lane] = append(t.lanes[n.lane], Note{Pitch: pitch, Duration: t.tick - n.start})
	t.lastTick[n.lane] = t.tick

	t.active[pitch] = activeNote{}
	t.free.put(n.lane)
}

func (t *TrackReader) endTrack() {
	if t.CloseDanglingNotes {
		for pitch := 0; pitch < pitchCount; pitch++ {
			t.endNote(uint8(pitch))
		}
	}

	t.duration = t.tick
	t.active = nil
	t.lastTick = nil
	t.free = nil
	t.finished = true
}

func (t *TrackReader) Finished() bool {
	return t.finished
}

// Track returns what has been reconstructed so far.
func (t *TrackReader) Track() *Track {
	return &Track{
		Name:     t.name,
		Tempo:    t.tempo,
		Duration: t.duration,
		Lanes:    t.lanes,
	}
}
