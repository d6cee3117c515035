package stitch

// Hoop is the physical embroidery frame size recorded by PES version 6,
// in millimeters.
type Hoop struct {
	Width, Height int
}

// ContainerMetadata carries the container-level fields of a decoded or
// to-be-encoded pattern. Which fields are populated depends on the format
// version: PES version 1 records none of the descriptive strings, and only
// version 6 and later record a hoop and thread chart.
type ContainerMetadata struct {
	// Version is the 4-ASCII-digit PES version tag ("0001", "0060"), or
	// VersionPEC for a standalone PEC file.
	Version string

	// Label is the pattern label stored in the PEC header, at most 16
	// bytes on the wire.
	Label string

	// Descriptive strings from the PES version 6 header.
	Name      string
	Category  string
	Author    string
	Keywords  string
	Comments  string
	ImageFile string

	// Hoop is the recorded hoop size, nil when the version does not
	// record one.
	Hoop *Hoop

	// ObjectOffsets lists the byte offsets of the embroidery objects in
	// the container. Version 1 supports exactly one object.
	ObjectOffsets []uint32

	// RecordedWidth and RecordedHeight are the design size fields read
	// from the PEC stitch section. They are retained for round-trip
	// fidelity checks only; Pattern.Extents is always recomputed from the
	// program and never trusted from file content.
	RecordedWidth  int
	RecordedHeight int
}

// Pattern is a fully decoded embroidery pattern: the stitch program, its
// color table, container metadata, and the recomputed extents. A Pattern is
// owned entirely by the caller; the codec keeps no state between calls.
type Pattern struct {
	Program Program
	Colors  ColorTable
	Meta    ContainerMetadata

	// Extents is the bounding box recomputed from Program on decode.
	Extents Extents

	// Thumbnails holds the raw 1-bit-per-pixel PEC icon bytes: one
	// general icon followed by one per color, each ThumbStride×ThumbHeight
	// bytes. Empty when the source had none or decoding skipped them; the
	// encoder then writes generated placeholder icons.
	Thumbnails [][]byte
}

// PEC thumbnail geometry. Icons are 48×38 pixels, one bit per pixel,
// 6 bytes per row.
const (
	// ThumbStride is the icon row stride in bytes.
	ThumbStride = 6

	// ThumbHeight is the icon height in rows.
	ThumbHeight = 38

	// ThumbWidth is the icon width in pixels.
	ThumbWidth = ThumbStride * 8
)

// Validate checks the pattern's model invariants: program termination, color
// reference resolution, and color table consistency.
func (p *Pattern) Validate() error {
	if err := p.Colors.validate(); err != nil {
		return err
	}
	return p.Program.Validate(p.Colors)
}
