package stitch

import "sort"

// Version tags accepted by Encode and reported in ContainerMetadata.Version.
const (
	// VersionPES1 is the minimal PES container: no metadata strings, no
	// thread chart, exactly one embroidery object.
	VersionPES1 = "0001"

	// VersionPES6 adds metadata strings, a hoop record, an embedded
	// thread chart, a multi-object directory, and the color addendum.
	VersionPES6 = "0060"

	// VersionPEC marks a standalone PEC file rather than a PES container.
	VersionPEC = "PEC"
)

// blockKind enumerates the block types a PES container can hold. The version
// table orders them per version; adding a version is a data change here, not
// new control flow in the codec.
type blockKind int

const (
	// blockHeaderV1 is the fixed six-byte version 1 header.
	blockHeaderV1 blockKind = iota

	// blockHeaderV6 is the version 6 header: metadata strings, hoop and
	// design-page fields, and the thread chart.
	blockHeaderV6

	// blockGeometry is the CEmbOne/CSewSeg section describing stitch
	// geometry, plus the object directory on versions that have one.
	// Decoding locates the PEC payload through the directory offset and
	// does not interpret this section.
	blockGeometry

	// blockPECPayload is the embedded PEC stitch block, located through the
	// absolute offset recorded after the magic.
	blockPECPayload

	// blockAddendum is the version 6 trailing block repeating the palette
	// index list and thread RGB values.
	blockAddendum
)

// versionLayout is the static block configuration for one PES version.
type versionLayout struct {
	tag        string
	maxObjects int
	hasHoop    bool
	blocks     []blockKind
}

// versionTable maps a version tag to its layout. Read-only process-wide
// data; safe for unsynchronized concurrent reads.
var versionTable = map[string]versionLayout{
	VersionPES1: {
		tag:        VersionPES1,
		maxObjects: 1,
		blocks:     []blockKind{blockHeaderV1, blockGeometry, blockPECPayload},
	},
	VersionPES6: {
		tag:        VersionPES6,
		maxObjects: 64,
		hasHoop:    true,
		blocks:     []blockKind{blockHeaderV6, blockGeometry, blockPECPayload, blockAddendum},
	},
}

// SupportedVersions returns the PES version tags the codec can read and
// write, sorted ascending.
func SupportedVersions() []string {
	tags := make([]string, 0, len(versionTable))
	for tag := range versionTable {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
