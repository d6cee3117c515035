package stitch

import "bytes"

// FormatKind identifies the container format of a byte buffer.
type FormatKind int

const (
	// FormatUnknown means the buffer matches no known magic.
	FormatUnknown FormatKind = iota

	// FormatPES is the "#PES" container holding an embedded PEC block.
	FormatPES

	// FormatPEC is a standalone "#PEC" stitch file.
	FormatPEC
)

// String returns the format name.
func (k FormatKind) String() string {
	switch k {
	case FormatPES:
		return "PES"
	case FormatPEC:
		return "PEC"
	default:
		return "unknown"
	}
}

// Sniff inspects the magic bytes and reports the container format without
// parsing anything else. Callers use it to choose between PES container
// decoding and standalone PEC decoding.
func Sniff(data []byte) FormatKind {
	switch {
	case bytes.HasPrefix(data, []byte("#PES")):
		return FormatPES
	case bytes.HasPrefix(data, []byte("#PEC")):
		return FormatPEC
	default:
		return FormatUnknown
	}
}
