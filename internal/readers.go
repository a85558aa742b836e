package internal

import "math"

// ReadInt32 reads a little-endian two's-complement 32-bit integer starting at
// off. The sign fix-up is performed explicitly on the unsigned value instead
// of relying on a native signed conversion, matching the source arithmetic.
func ReadInt32(b []byte, off int) int32 {
	raw := uint32(b[off]) |
		uint32(b[off+1])<<8 |
		uint32(b[off+2])<<16 |
		uint32(b[off+3])<<24
	v := int64(raw)
	if v >= 1<<31 {
		v -= 1 << 32
	}
	return int32(v)
}

// ReadFloat32 reads a little-endian IEEE-754 single-precision float starting
// at off by decomposing sign, exponent and mantissa. Exponent 0 is collapsed
// to 0.0 (denormals included), and exponent 255 is collapsed to a signed
// infinity for every payload, NaN bit patterns included. Both collapses are
// deliberate simplifications carried over from the original decoder.
func ReadFloat32(b []byte, off int) float32 {
	raw := uint32(b[off]) |
		uint32(b[off+1])<<8 |
		uint32(b[off+2])<<16 |
		uint32(b[off+3])<<24

	sign := 1.0
	if raw>>31 == 1 {
		sign = -1.0
	}
	exponent := (raw >> 23) & 0xFF
	mantissa := raw & 0x7FFFFF

	switch exponent {
	case 0:
		return 0
	case 255:
		return float32(math.Inf(int(sign)))
	}

	return float32(sign * (1 + float64(mantissa)/(1<<23)) * math.Pow(2, float64(exponent)-127))
}
