package midi

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// readByte reads one byte and advances offset.
func (d *Decoder) readByte() (byte, error) {
	var b byte
	if err := binary.Read(d.r, binary.BigEndian, &b); err != nil {
		return 0, d.truncated(err)
	}
	d.offset++
	return b, nil
}

// unreadByte steps the cursor back over the last byte read.
func (d *Decoder) unreadByte() error {
	if _, err := d.r.Seek(-1, io.SeekCurrent); err != nil {
		return err
	}
	d.offset--
	return nil
}

// readBytes appends exactly n bytes from the stream to out.
func (d *Decoder) readBytes(out []byte, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return out, d.truncated(err)
	}
	d.offset += int64(n)
	return append(out, buf...), nil
}

func (d *Decoder) uint16() (uint16, error) {
	var v uint16
	if err := binary.Read(d.r, binary.BigEndian, &v); err != nil {
		return 0, d.truncated(err)
	}
	d.offset += 2
	return v, nil
}

func (d *Decoder) uint32() (uint32, error) {
	var v uint32
	if err := binary.Read(d.r, binary.BigEndian, &v); err != nil {
		return 0, d.truncated(err)
	}
	d.offset += 4
	return v, nil
}

// varLen returns the variable length value at the exact parser location.
func (d *Decoder) varLen() (uint32, error) {
	buf := []byte{}
	for {
		b, err := d.readByte()
		if err != nil {
			return 0, err
		}
		buf = append(buf, b)
		if b&0x80 == 0 {
			break
		}
	}

	val, _ := decodeVarint(buf)
	return val, nil
}

// IDnSize reads a chunk header: the 4 byte ID and its 32 bit length.
func (d *Decoder) IDnSize() ([4]byte, uint32, error) {
	var ID [4]byte
	if err := binary.Read(d.r, binary.BigEndian, &ID); err != nil {
		return ID, 0, d.truncated(err)
	}
	d.offset += 4 // [4]byte ID

	size, err := d.uint32()
	if err != nil {
		return ID, 0, err
	}

	return ID, size, nil
}

func (d *Decoder) truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrTruncatedStream, "offset %d", d.offset)
	}
	return err
}
