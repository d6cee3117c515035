package stitch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the PEC/PES codec. All failures returned by Decode,
// Encode, and Validate match exactly one of these via errors.Is; most are
// wrapped in an *OffsetError that records where in the buffer the problem
// was detected.
var (
	// ErrMalformedHeader indicates bad magic bytes or a structurally
	// invalid header.
	ErrMalformedHeader = errors.New("stitch: malformed header")

	// ErrUnsupportedVersion indicates a PES version tag with no entry in
	// the version table. No block parsing is attempted.
	ErrUnsupportedVersion = errors.New("stitch: unsupported version")

	// ErrTruncatedStitchData indicates the stitch stream ended before its
	// end marker. The codec never returns a silently shortened program.
	ErrTruncatedStitchData = errors.New("stitch: truncated stitch data")

	// ErrInvalidProgram indicates a Program that violates a model
	// invariant (missing or non-terminal End, commands after End).
	ErrInvalidProgram = errors.New("stitch: invalid stitch program")

	// ErrUnknownColorIndex indicates a color reference that resolves
	// neither in the embedded color table nor in the built-in catalog.
	ErrUnknownColorIndex = errors.New("stitch: unknown color index")

	// ErrEncodingOverflow indicates a displacement too large even for the
	// long-form delta encoding. The encoder never clamps.
	ErrEncodingOverflow = errors.New("stitch: delta exceeds encodable range")

	// ErrVersionCapabilityExceeded indicates the Pattern needs a feature
	// the target version lacks, such as multiple embroidery objects in
	// PES version 1.
	ErrVersionCapabilityExceeded = errors.New("stitch: version capability exceeded")
)

// OffsetError annotates a codec error with the byte offset and block where it
// was detected. Match the underlying cause with errors.Is; recover the
// location with errors.As.
type OffsetError struct {
	// Offset is the byte offset into the buffer being decoded or encoded.
	// Negative when no single offset applies.
	Offset int

	// Block identifies the section being processed ("pec header",
	// "stitch stream", "pes header", ...).
	Block string

	// Err is the underlying error, wrapping one of the sentinels above.
	Err error
}

func (e *OffsetError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %v", e.Block, e.Err)
	}
	return fmt.Sprintf("%s at offset %#x: %v", e.Block, e.Offset, e.Err)
}

func (e *OffsetError) Unwrap() error { return e.Err }

// errAt wraps err with the block name and byte offset where it was detected.
func errAt(block string, off int, err error) error {
	return &OffsetError{Offset: off, Block: block, Err: err}
}

// errAtf builds a detail message around a sentinel and locates it.
func errAtf(block string, off int, sentinel error, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return &OffsetError{Offset: off, Block: block, Err: fmt.Errorf("%s: %w", detail, sentinel)}
}
