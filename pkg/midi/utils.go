package midi

// decodeVarint decodes a variable-length quantity, 7 bits per byte, most
// significant group first. The accumulator is not bounded beyond 32 bits.
func decodeVarint(buf []byte) (x uint32, n int) {
	for _, b := range buf {
		x = x<<7 | uint32(b)&0x7F
		n++
		if b&0x80 == 0 {
			return x, n
		}
	}

	return x, n
}

// isShortMsg reports whether status carries a single data byte
// (program change, channel pressure).
func isShortMsg(status byte) bool {
	return 0xC0 <= status && status <= 0xDF
}
