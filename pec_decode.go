package stitch

import (
	"bytes"
	"errors"

	"github.com/gogpu/stitch/internal/bio"
)

// DecodePEC decodes a standalone PEC file ("#PEC0001" magic).
func DecodePEC(data []byte, opts ...DecodeOption) (*Pattern, error) {
	o := buildDecodeOptions(opts)
	r := bio.NewReader(data)
	magic, err := r.Bytes(len(pecMagic))
	if err != nil || !bytes.Equal(magic, []byte(pecMagic)) {
		return nil, errAtf("pec header", 0, ErrMalformedHeader, "bad magic %q", magic)
	}
	pat, err := readPECContent(r, o.chart, &o)
	if err != nil {
		return nil, err
	}
	pat.Meta.Version = VersionPEC
	return pat, nil
}

// readPECContent parses a PEC payload with the reader positioned just past
// the magic (standalone) or at the recorded PEC block offset (embedded in
// PES). chart is the thread chart from the surrounding PES header and may be
// empty, in which case colors resolve through the built-in catalog.
func readPECContent(r *bio.Reader, chart ColorTable, o *decodeOptions) (*Pattern, error) {
	base := r.Offset()

	la, err := r.Bytes(3)
	if err != nil || !bytes.Equal(la, []byte("LA:")) {
		return nil, errAtf("pec header", base, ErrMalformedHeader, "missing label marker")
	}
	rawLabel, err := r.Bytes(16)
	if err != nil {
		return nil, errAt("pec header", r.Offset(), short(err))
	}
	label := decodeLabel(rawLabel)

	// Undocumented or unused header bytes between the label and the
	// thumbnail geometry.
	if err := r.Skip(0x0F); err != nil {
		return nil, errAt("pec header", r.Offset(), short(err))
	}
	thumbStride, err := r.U8()
	if err != nil {
		return nil, errAt("pec header", r.Offset(), short(err))
	}
	thumbHeight, err := r.U8()
	if err != nil {
		return nil, errAt("pec header", r.Offset(), short(err))
	}
	if err := r.Skip(0x0C); err != nil {
		return nil, errAt("pec header", r.Offset(), short(err))
	}

	// The color count field stores count-1, so 0xFF means zero colors.
	colorChanges, err := r.U8()
	if err != nil {
		return nil, errAt("pec header", r.Offset(), short(err))
	}
	colorCount := int(colorChanges + 1) // uint8 arithmetic wraps on purpose
	colorBytes, err := r.Bytes(colorCount)
	if err != nil {
		return nil, errAt("pec color list", r.Offset(), short(err))
	}
	colors := mapPECColors(colorBytes, chart)

	if err := r.Skip(0x1D0 - int(colorChanges)); err != nil {
		return nil, errAt("pec header", r.Offset(), short(err))
	}

	sectionLen, err := r.U24()
	if err != nil {
		return nil, errAt("pec stitch section", r.Offset(), short(err))
	}
	sectionEnd := r.Offset() + int(sectionLen) - 5

	// 11 fixed bytes precede the stitch stream: a constant triple, the
	// recorded design size, and two hoop-related constants.
	if err := r.Skip(3); err != nil {
		return nil, errAt("pec stitch section", r.Offset(), short(err))
	}
	recordedW, err := r.U16()
	if err != nil {
		return nil, errAt("pec stitch section", r.Offset(), short(err))
	}
	recordedH, err := r.U16()
	if err != nil {
		return nil, errAt("pec stitch section", r.Offset(), short(err))
	}
	if err := r.Skip(4); err != nil {
		return nil, errAt("pec stitch section", r.Offset(), short(err))
	}

	program, err := readStitches(r)
	if err != nil {
		return nil, err
	}
	Logger().Debug("pec: stitch stream decoded",
		"commands", len(program), "colors", len(colors),
		"section_start", base, "section_end", sectionEnd)

	pat := &Pattern{
		Program: program,
		Colors:  colors,
		Meta: ContainerMetadata{
			Label:          label,
			RecordedWidth:  int(recordedW),
			RecordedHeight: int(recordedH),
		},
		Extents: program.Extents(),
	}
	if err := pat.Validate(); err != nil {
		return nil, errAt("stitch stream", r.Offset(), err)
	}

	if !o.skipThumbnails {
		pat.Thumbnails = readThumbnails(r, sectionEnd, int(thumbStride), int(thumbHeight), len(colors))
	}
	return pat, nil
}

// mapPECColors builds the color table from the PEC color index list and an
// optional PES thread chart. An empty chart resolves everything through the
// built-in catalog; a chart covering every color replaces it entirely; a
// shorter chart is drained first and the catalog fills the remainder.
func mapPECColors(colorBytes []byte, chart ColorTable) ColorTable {
	if len(chart) >= len(colorBytes) && len(chart) > 0 {
		return chart
	}

	table := make(ColorTable, 0, len(colorBytes))
	assigned := make(map[int]ColorEntry)
	next := 0
	for i, b := range colorBytes {
		id := int(b) % len(threadCatalog)
		e, ok := assigned[id]
		if !ok {
			if next < len(chart) {
				e = chart[next]
				next++
			} else {
				e = ColorEntry{CatalogID: id}
			}
			assigned[id] = e
		}
		e.Index = i
		table = append(table, e)
	}
	return table
}

// readStitches decodes the delta stream up to and including the end marker.
// A buffer exhausted before the end marker is a hard error; the decoder
// never returns a silently shortened program.
func readStitches(r *bio.Reader) (Program, error) {
	var program Program
	nextColor := 1
	for {
		at := r.Offset()
		b1, err := r.U8()
		if err != nil {
			return nil, errAt("stitch stream", at, trunc(err))
		}
		b2, err := r.U8()
		if err != nil {
			return nil, errAt("stitch stream", at, trunc(err))
		}

		if b1 == markEnd1 && b2 == markEnd2 {
			program = append(program, End())
			return program, nil
		}
		if b1 == markColorChange1 && b2 == markColorChange2 {
			// The third byte is an alternating 2/1 toggle with no
			// color information; decode assigns sequential table
			// indices instead.
			if _, err := r.U8(); err != nil {
				return nil, errAt("stitch stream", at, trunc(err))
			}
			program = append(program, ColorChange(nextColor))
			nextColor++
			continue
		}

		var jump, trim bool
		var x, y int
		if b1&flagLong != 0 {
			trim = b1&flagTrim != 0
			jump = b1&flagJump != 0
			x = signed12(uint16(b1)<<8 | uint16(b2))
			b2, err = r.U8()
			if err != nil {
				return nil, errAt("stitch stream", at, trunc(err))
			}
		} else {
			x = signed7(b1)
		}
		if b2&flagLong != 0 {
			trim = trim || b2&flagTrim != 0
			jump = jump || b2&flagJump != 0
			b3, err := r.U8()
			if err != nil {
				return nil, errAt("stitch stream", at, trunc(err))
			}
			y = signed12(uint16(b2)<<8 | uint16(b3))
		} else {
			y = signed7(b2)
		}

		switch {
		case jump:
			program = append(program, Move(x, y))
		case trim:
			program = append(program, Trim())
			if x != 0 || y != 0 {
				program = append(program, Move(x, y))
			}
		default:
			program = append(program, Stitch(x, y))
		}
	}
}

// readThumbnails collects the raw icon bytes following the stitch section:
// one general icon plus one per color. Missing or short icon data is
// tolerated, matching real-world files with stripped graphics.
func readThumbnails(r *bio.Reader, sectionEnd, stride, height, colorCount int) [][]byte {
	if err := r.Seek(sectionEnd); err != nil {
		Logger().Warn("pec: thumbnail section out of bounds", "offset", sectionEnd)
		return nil
	}
	size := stride * height
	if size == 0 {
		return nil
	}
	icons := make([][]byte, 0, colorCount+1)
	for i := 0; i < colorCount+1; i++ {
		raw, err := r.Bytes(size)
		if err != nil {
			Logger().Warn("pec: thumbnail data short", "have", i, "want", colorCount+1)
			break
		}
		icons = append(icons, raw)
	}
	return icons
}

// short maps a bio read failure to the header-level truncation sentinel.
func short(err error) error {
	if errors.Is(err, bio.ErrShortBuffer) {
		return ErrMalformedHeader
	}
	return err
}

// trunc maps a bio read failure inside the stitch stream to
// ErrTruncatedStitchData.
func trunc(err error) error {
	if errors.Is(err, bio.ErrShortBuffer) {
		return ErrTruncatedStitchData
	}
	return err
}
