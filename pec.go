package stitch

// PEC wire-format constants. A coordinate byte with flagLong set opens a
// two-byte long-form value whose bits 5 and 4 distinguish trims and jumps
// from plain stitches; short-form bytes carry a 7-bit two's-complement delta
// and can only be stitches.
const (
	pecMagic = "#PEC0001"

	flagLong = 0x80
	flagTrim = 0x20
	flagJump = 0x10

	markColorChange1 = 0xFE
	markColorChange2 = 0xB0
	markEnd1         = 0xFF
	markEnd2         = 0x00

	// Short form covers [-63, 63]; the asymmetric -64 is representable by
	// the 7-bit fold but is always written long-form, so the encoder and
	// decoder agree on one byte per value in the short range.
	maxShortDelta = 63

	// Long form is a 12-bit two's-complement value.
	maxLongDelta = 2047
	minLongDelta = -2048
)

// signed7 unfolds a short-form coordinate byte.
func signed7(b byte) int {
	if b > 63 {
		return int(b) - 128
	}
	return int(b)
}

// signed12 unfolds a long-form coordinate pair packed into a uint16.
func signed12(v uint16) int {
	v &= 0x0FFF
	if v > 0x7FF {
		return int(v) - 0x1000
	}
	return int(v)
}
