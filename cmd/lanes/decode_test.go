package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garik-/midilanes/pkg/midi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeSMF(t *testing.T, dir, name string, pitches ...uint8) string {
	t.Helper()

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	for _, p := range pitches {
		tr.Add(0, gomidi.NoteOn(0, p, 100))
		tr.Add(480, gomidi.NoteOff(0, p))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	path := filepath.Join(dir, name+".mid")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestDecodeFile(t *testing.T) {
	path := writeSMF(t, t.TempDir(), "melody", 60, 62, 64)

	r := decodeFile(path, false)
	require.NoError(t, r.err)
	assert.Equal(t, uint16(480), r.ticksPerQuarterNote)
	require.Len(t, r.tracks, 1)
	assert.Equal(t, "melody", r.tracks[0].Name)
	assert.Equal(t, []midi.Lane{{{Pitch: 60, Duration: 480}, {Pitch: 62, Duration: 480}, {Pitch: 64, Duration: 480}}}, r.tracks[0].Lanes)
}

func TestDecodeFileErrors(t *testing.T) {
	dir := t.TempDir()

	r := decodeFile(filepath.Join(dir, "missing.mid"), false)
	assert.True(t, os.IsNotExist(errors.Cause(r.err)))

	bad := filepath.Join(dir, "bad.mid")
	require.NoError(t, os.WriteFile(bad, []byte("RIFF0000WAVE"), 0644))
	r = decodeFile(bad, false)
	assert.True(t, errors.Is(r.err, midi.ErrInvalidFormat))
	assert.Empty(t, r.tracks)
}

func TestDecodeAll(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		paths = append(paths, writeSMF(t, dir, name, 60))
	}
	paths = append(paths, filepath.Join(dir, "missing.mid"))

	results := decodeAll(context.Background(), argList(paths), 2, false)
	require.Len(t, results, len(paths))

	for i, r := range results[:5] {
		assert.Equal(t, paths[i], r.name)
		require.NoError(t, r.err)
		require.Len(t, r.tracks, 1)
	}
	assert.Error(t, results[5].err)
}

func TestDecodeAllCancelled(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 8; i++ {
		paths = append(paths, writeSMF(t, dir, string(rune('a'+i)), 60))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := decodeAll(ctx, argList(paths), 1, false)
	require.Len(t, results, len(paths))

	for i, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, paths[i], r.name)
		if r.err != nil {
			assert.True(t, errors.Is(r.err, context.Canceled), "%s: %v", r.name, r.err)
			continue
		}
		assert.Len(t, r.tracks, 1)
	}
}

func TestWriteText(t *testing.T) {
	results := []*result{{
		name:                "song.mid",
		ticksPerQuarterNote: 480,
		tracks: []*midi.Track{{
			Name:     "Piano",
			Tempo:    500000,
			Duration: 1440,
			Lanes: []midi.Lane{
				{{Pitch: 60, Duration: 960}},
				{{Pitch: midi.RestPitch, Duration: 480}, {Pitch: 64, Duration: 960}},
			},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, results))

	assert.Equal(t, "song.mid: 1 tracks, 480 ticks per quarter note\n"+
		"  track 0 \"Piano\": tempo 500000, 1440 ticks, 2 lanes\n"+
		"    lane 0: 60:960@0\n"+
		"    lane 1: r:480 64:960@1\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	results := []*result{{
		name:   "broken.mid",
		tracks: []*midi.Track{{Name: "first", Lanes: []midi.Lane{{{Pitch: 60, Duration: 10}}}}},
		err:    errors.Wrap(midi.ErrTruncatedStream, "track 1"),
	}}

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, results))

	var reports []fileReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "track 1: truncated stream", reports[0].Error)
	require.Len(t, reports[0].Tracks, 1)
	assert.Equal(t, "first", reports[0].Tracks[0].Name)
	assert.Equal(t, midi.Lane{{Pitch: 60, Duration: 10}}, reports[0].Tracks[0].Lanes[0])
}
