package codec

// Mask returns a value with the low n bits set
func Mask(n int) uint32 {
	switch {
	case n <= 0:
		return 0
	case n >= 32:
		return 0xffffffff
	}
	return 1<<uint(n) - 1
}

// Expand scales an n-bit channel value up to 8 bits by repeating its bits
// downwards, so 1 becomes 0xff for n == 1 and 0b101 becomes 0b10110110 for
// n == 3. This is how the hardware maps its reduced color depth and is not
// a linear rescale.
func Expand(v uint32, n int) uint8 {
	if n <= 0 {
		return 0
	}
	if n >= 8 {
		return uint8(v >> uint(n-8))
	}
	v &= Mask(n)
	out := uint32(0)
	for filled := 0; filled < 8; filled += n {
		out = out<<uint(n) | v
	}
	// Drop the bits that overflowed past the eighth
	extra := (8+n-1)/n*n - 8
	return uint8(out >> uint(extra))
}

// Reduce truncates an 8-bit channel value to its top n bits
func Reduce(v uint8, n int) uint32 {
	if n <= 0 {
		return 0
	}
	if n >= 8 {
		return uint32(v)
	}
	return uint32(v) >> uint(8-n)
}

// getBit reports whether bit b of data is set, where bit 0 is the most
// significant bit of data[0]
func getBit(data []byte, b int) bool {
	return data[b>>3]&(0x80>>uint(b&7)) != 0
}

// setBit sets bit b of data, using the same numbering as getBit
func setBit(data []byte, b int) {
	data[b>>3] |= 0x80 >> uint(b&7)
}
