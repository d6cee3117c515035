package stitch

import (
	"fmt"
	"image/color"
)

// Color is a thread color as stored in PES thread charts and the built-in
// catalog.
type Color struct {
	R, G, B uint8
}

// Color converts to the standard color.Color interface (opaque).
func (c Color) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// ColorEntry is one thread in a pattern's color table. At least one of RGB
// and CatalogID is set: PES version 6 charts embed RGB directly, while PEC
// color lists reference the built-in catalog by id.
type ColorEntry struct {
	// Index is the entry's identity within the table, referenced by
	// ColorChange commands. Indices are unique per table.
	Index int

	// RGB is the embedded color, nil when the entry only references the
	// catalog.
	RGB *Color

	// CatalogID references the built-in thread catalog (1..64).
	// Zero means no catalog reference.
	CatalogID int

	// Thread chart strings carried by PES version 6 entries.
	CatalogNumber string
	Description   string
	Brand         string
	Chart         string
}

// ColorTable is the ordered color table of a pattern.
type ColorTable []ColorEntry

// Lookup returns the entry with the given index.
func (t ColorTable) Lookup(index int) (ColorEntry, bool) {
	for _, e := range t {
		if e.Index == index {
			return e, true
		}
	}
	return ColorEntry{}, false
}

// Resolve returns the RGB color for the entry with the given index. Entries
// without embedded RGB resolve through the built-in catalog. A missing index
// or an unresolvable entry returns ErrUnknownColorIndex.
func (t ColorTable) Resolve(index int) (Color, error) {
	e, ok := t.Lookup(index)
	if !ok {
		return Color{}, fmt.Errorf("color index %d not in table: %w", index, ErrUnknownColorIndex)
	}
	return e.resolve()
}

func (e ColorEntry) resolve() (Color, error) {
	if e.RGB != nil {
		return *e.RGB, nil
	}
	if th, ok := CatalogThreadByID(e.CatalogID); ok {
		return th.RGB, nil
	}
	return Color{}, fmt.Errorf("color entry %d has catalog id %d: %w",
		e.Index, e.CatalogID, ErrUnknownColorIndex)
}

// validate checks table-level invariants: unique indices and no entry with
// both RGB and CatalogID absent.
func (t ColorTable) validate() error {
	seen := make(map[int]bool, len(t))
	for _, e := range t {
		if seen[e.Index] {
			return fmt.Errorf("duplicate color index %d: %w", e.Index, ErrInvalidProgram)
		}
		seen[e.Index] = true
		if e.RGB == nil && e.CatalogID == 0 {
			return fmt.Errorf("color entry %d has neither RGB nor catalog id: %w",
				e.Index, ErrUnknownColorIndex)
		}
	}
	return nil
}

// colorDistance is the red-mean weighted squared distance between two colors.
// See https://www.compuphase.com/cmetric.htm.
func colorDistance(a, b Color) int {
	redMean := (int(a.R) + int(b.R)) / 2
	r := int(a.R) - int(b.R)
	g := int(a.G) - int(b.G)
	bd := int(a.B) - int(b.B)
	return ((512+redMean)*r*r)>>8 + 4*g*g + ((767-redMean)*bd*bd)>>8
}

// nearestCatalogID returns the id of the catalog thread closest to c.
// The placeholder entry 0 is never chosen.
func nearestCatalogID(c Color) int {
	best, bestDist := 1, int(^uint(0)>>1)
	for id := 1; id < len(threadCatalog); id++ {
		if d := colorDistance(c, threadCatalog[id].RGB); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}
