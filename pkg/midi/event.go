package midi

import (
	"github.com/pkg/errors"
)

const (
	statusMeta = 0xFF

	msgNoteOff = 0x8
	msgNoteOn  = 0x9

	metaTrackName  = 0x03
	metaEndOfTrack = 0x2F
	metaTempo      = 0x51
)

// Event is a single decoded track event. For meta events Data holds the meta
// type, the length byte and the payload, in that order.
type Event struct {
	TimeDelta uint32
	Status    uint8
	Data      []byte
}

// MsgType is the high nibble of the status byte.
func (e *Event) MsgType() uint8 {
	return e.Status >> 4
}

func (e *Event) IsMeta() bool {
	return e.Status == statusMeta && len(e.Data) >= 2
}

func (e *Event) MetaType() uint8 {
	if !e.IsMeta() {
		return 0
	}
	return e.Data[0]
}

// Payload returns the meta event bytes following the length field.
func (e *Event) Payload() []byte {
	if !e.IsMeta() {
		return nil
	}
	return e.Data[2:]
}

// readEvent decodes the next delta-time and event, applying running status.
func (d *Decoder) readEvent() (*Event, error) {
	timeDelta, err := d.varLen()
	if err != nil {
		return nil, err
	}

	// status byte give us the msg type and channel.
	status, err := d.readByte()
	if err != nil {
		return nil, err
	}

	if status&0x80 == 0 {
		if d.lastStatus == 0 {
			return nil, errors.Wrapf(ErrInvalidFormat, "data byte %#x without running status at offset %d", status, d.offset-1)
		}
		if err := d.unreadByte(); err != nil {
			return nil, err
		}
		status = d.lastStatus
	}

	e := &Event{TimeDelta: timeDelta, Status: status}

	switch {
	case status == statusMeta:
		// meta type, length
		if e.Data, err = d.readBytes(e.Data, 2); err != nil {
			return nil, err
		}
		e.Data, err = d.readBytes(e.Data, int(e.Data[1]))
	case isShortMsg(status):
		e.Data, err = d.readBytes(e.Data, 1)
	default:
		e.Data, err = d.readBytes(e.Data, 2)
	}
	if err != nil {
		return nil, err
	}

	d.lastStatus = status
	return e, nil
}
