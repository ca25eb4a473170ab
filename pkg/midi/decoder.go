package midi

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type timeFormat int

const (
	MetricalTF timeFormat = iota + 1
	TimeCodeTF
)

var (
	headerChunkID = [4]byte{0x4D, 0x54, 0x68, 0x64}
	trackChunkID  = [4]byte{0x4D, 0x54, 0x72, 0x6B}

	// ErrInvalidFormat reports a header or track chunk that is not a Standard MIDI File one.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrTruncatedStream reports that the source ended in the middle of a read.
	ErrTruncatedStream = errors.New("truncated stream")
)

type Decoder struct {
	r          io.ReadSeeker
	offset     int64
	lastStatus uint8

	// CloseDanglingNotes is passed on to every TrackReader.
	CloseDanglingNotes bool

	Format              uint16
	TrackCount          uint16
	Division            uint16
	TicksPerQuarterNote uint16
	TimeFormat          timeFormat
	// Tracks holds every track sealed so far, also when Decode fails on a
	// later track.
	Tracks []*Track
}

// Decode reads the header chunk, then TrackCount track chunks.
func (d *Decoder) Decode() error {
	if _, err := d.r.Seek(0, io.SeekStart); err != nil {
		return err
	}

	d.offset = 0
	d.Tracks = nil

	if err := d.parseHeader(); err != nil {
		return err
	}

	decoderLog.Debug("header",
		zap.Uint16("format", d.Format),
		zap.Uint16("tracks", d.TrackCount),
		zap.Uint16("division", d.Division))

	for i := 0; i < int(d.TrackCount); i++ {
		track, err := d.parseTrack()
		if err != nil {
			return errors.WithMessagef(err, "track %d", i)
		}

		decoderLog.Debug("track",
			zap.Int("index", i),
			zap.String("name", track.Name),
			zap.Uint32("duration", track.Duration),
			zap.Int("lanes", track.Voices()))

		d.Tracks = append(d.Tracks, track)
	}

	return nil
}

func (d *Decoder) parseHeader() error {
	code, _, err := d.IDnSize()
	if err != nil {
		return err
	}

	if code != headerChunkID {
		return errors.Wrapf(ErrInvalidFormat, "header chunk ID %v", code)
	}

	if d.Format, err = d.uint16(); err != nil {
		return err
	}
	if d.TrackCount, err = d.uint16(); err != nil {
		return err
	}
	if d.Division, err = d.uint16(); err != nil {
		return err
	}

	if (d.Division & 0x8000) == 0 {
		d.TicksPerQuarterNote = d.Division & 0x7FFF
		d.TimeFormat = MetricalTF
	} else {
		d.TicksPerQuarterNote = 0
		d.TimeFormat = TimeCodeTF
	}

	return nil
}

// parseTrack decodes one track chunk until its end of track event. The chunk
// length is not used to bound the read.
func (d *Decoder) parseTrack() (*Track, error) {
	id, _, err := d.IDnSize()
	if err != nil {
		return nil, err
	}
	if id != trackChunkID {
		return nil, errors.Wrapf(ErrInvalidFormat, "expected track chunk ID %v, got %v", trackChunkID, id)
	}

	d.lastStatus = 0

	reader := NewTrackReader()
	reader.CloseDanglingNotes = d.CloseDanglingNotes

	for !reader.Finished() {
		e, err := d.readEvent()
		if err != nil {
			return nil, err
		}
		reader.Apply(e)
	}

	return reader.Track(), nil
}

func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{r: r, offset: 0}
}
