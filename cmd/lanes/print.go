package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Garik-/midilanes/pkg/midi"
)

type fileReport struct {
	Name                string        `json:"name"`
	TicksPerQuarterNote uint16        `json:"ticks_per_quarter_note"`
	Tracks              []*midi.Track `json:"tracks"`
	Error               string        `json:"error,omitempty"`
}

func writeJSON(w io.Writer, results []*result) error {
	reports := make([]fileReport, 0, len(results))
	for _, r := range results {
		report := fileReport{
			Name:                r.name,
			TicksPerQuarterNote: r.ticksPerQuarterNote,
			Tracks:              r.tracks,
		}
		if r.err != nil {
			report.Error = r.err.Error()
		}
		reports = append(reports, report)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func writeText(w io.Writer, results []*result) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s: %d tracks, %d ticks per quarter note\n", r.name, len(r.tracks), r.ticksPerQuarterNote); err != nil {
			return err
		}

		for i, track := range r.tracks {
			if _, err := fmt.Fprintf(w, "  track %d %q: tempo %d, %d ticks, %d lanes\n",
				i, track.Name, track.Tempo, track.Duration, track.Voices()); err != nil {
				return err
			}

			for j, lane := range track.Lanes {
				if _, err := fmt.Fprintf(w, "    lane %d: %s\n", j, formatLane(lane, r.ticksPerQuarterNote)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// formatLane renders notes as pitch:duration@quarter and rests as r:duration.
func formatLane(lane midi.Lane, ticksPerQuarterNote uint16) string {
	parts := make([]string, 0, len(lane))
	lane.Walk(func(start uint32, n midi.Note) {
		if n.IsRest() {
			parts = append(parts, fmt.Sprintf("r:%d", n.Duration))
			return
		}
		parts = append(parts, fmt.Sprintf("%d:%d@%d", n.Pitch, n.Duration, midi.QuarterPosition(start, ticksPerQuarterNote)))
	})
	return strings.Join(parts, " ")
}
