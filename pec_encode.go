package stitch

import (
	"unicode/utf8"

	"github.com/gogpu/stitch/internal/bio"
)

// EncodePEC encodes a standalone PEC file ("#PEC0001" magic). The pattern
// must satisfy Validate; any command outside the format's encodable delta
// range aborts the whole encode with ErrEncodingOverflow.
func EncodePEC(p *Pattern, opts ...EncodeOption) ([]byte, error) {
	o := buildEncodeOptions(opts)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	w := &bio.Writer{}
	w.String(pecMagic)
	if _, err := writePECContent(w, p, &o); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// writePECContent serializes the PEC payload (header, color list, stitch
// section, thumbnails) and returns the palette index byte written for each
// color, which PES version 6 repeats in its addendum block.
func writePECContent(w *bio.Writer, p *Pattern, o *encodeOptions) ([]byte, error) {
	colorBytes, err := pecColorBytes(p.Colors)
	if err != nil {
		return nil, err
	}
	// The count-1 byte reserves 0xFF for an empty color list, so 255 colors
	// is the most the field can record.
	if len(colorBytes) > 255 {
		return nil, errAtf("pec color list", -1, ErrVersionCapabilityExceeded,
			"%d colors, the color count field holds at most 255", len(colorBytes))
	}
	stitches, err := encodeStitches(p.Program)
	if err != nil {
		return nil, err
	}

	label := o.label
	if label == "" {
		label = p.Meta.Label
	}
	if label == "" {
		label = "Untitled"
	}

	base := w.Len()
	w.String("LA:")
	w.Write(padLabel(label))
	w.U8(0x0D)
	w.Fill(12, 0x20)
	w.U8(0xFF)
	w.U8(0x00)
	w.U8(ThumbStride)
	w.U8(ThumbHeight)
	w.Fill(12, 0x20)

	// count-1 encoding: an empty color list is stored as 0xFF.
	colorChanges := byte(len(colorBytes) - 1)
	w.U8(colorChanges)
	w.Write(colorBytes)
	w.Fill(0x1D0-int(colorChanges), 0x20)

	e := p.Program.Extents()
	w.U24(uint32(len(stitches) + 16))
	w.U8(0x31)
	w.U8(0xFF)
	w.U8(0xF0)
	w.U16(uint16(e.Width()))
	w.U16(uint16(e.Height()))
	w.U16(0x1E0)
	w.U16(0x1B0)
	w.Write(stitches)

	writeThumbnails(w, p)

	Logger().Debug("pec: payload written",
		"offset", base, "stitch_bytes", len(stitches), "colors", len(colorBytes))
	return colorBytes, nil
}

// pecColorBytes maps each color table entry to its catalog palette index.
// Entries without a catalog reference map to the nearest catalog color.
func pecColorBytes(colors ColorTable) ([]byte, error) {
	out := make([]byte, 0, len(colors))
	for _, e := range colors {
		id := e.CatalogID
		if id < 1 || id >= len(threadCatalog) {
			rgb, err := e.resolve()
			if err != nil {
				return nil, errAt("pec color list", -1, err)
			}
			id = nearestCatalogID(rgb)
		}
		out = append(out, byte(id))
	}
	return out, nil
}

// encodeStitches serializes the command stream, including the end marker.
// Offsets in errors are relative to the start of the stitch stream.
func encodeStitches(program Program) ([]byte, error) {
	w := &bio.Writer{}
	colorToggle := byte(2)
	for i, cmd := range program {
		at := w.Len()
		switch cmd.Op {
		case OpMove:
			// Jumps carry a flag bit that only exists in the long
			// form, so both axes are always written long.
			if err := checkLongRange(cmd, i, at); err != nil {
				return nil, err
			}
			writeLong(w, cmd.DX, flagJump)
			writeLong(w, cmd.DY, flagJump)

		case OpStitch:
			if err := checkLongRange(cmd, i, at); err != nil {
				return nil, err
			}
			writeStitchDelta(w, cmd.DX)
			writeStitchDelta(w, cmd.DY)

		case OpColorChange:
			w.U8(markColorChange1)
			w.U8(markColorChange2)
			w.U8(colorToggle)
			colorToggle ^= 3

		case OpTrim:
			writeLong(w, 0, flagTrim)
			writeLong(w, 0, flagTrim)

		case OpEnd:
			w.U8(markEnd1)
			w.U8(markEnd2)
		}
	}
	return w.Bytes(), nil
}

func checkLongRange(cmd Command, index, at int) error {
	if cmd.DX < minLongDelta || cmd.DX > maxLongDelta {
		return errAtf("stitch stream", at, ErrEncodingOverflow,
			"command %d: dx %d outside [%d, %d]", index, cmd.DX, minLongDelta, maxLongDelta)
	}
	if cmd.DY < minLongDelta || cmd.DY > maxLongDelta {
		return errAtf("stitch stream", at, ErrEncodingOverflow,
			"command %d: dy %d outside [%d, %d]", index, cmd.DY, minLongDelta, maxLongDelta)
	}
	return nil
}

// writeStitchDelta writes one stitch axis: short form when the delta fits,
// long form otherwise.
func writeStitchDelta(w *bio.Writer, v int) {
	if v >= -maxShortDelta && v <= maxShortDelta {
		w.U8(byte(v) & 0x7F)
		return
	}
	writeLong(w, v, 0)
}

// writeLong writes one axis in the two-byte long form: continuation bit,
// flag bits, and a 12-bit two's-complement value split high/low.
func writeLong(w *bio.Writer, v int, flags byte) {
	code := uint16(v) & 0x0FFF
	w.U8(flagLong | flags | byte(code>>8))
	w.U8(byte(code))
}

// writeThumbnails writes the icon section: the pattern's own icons when they
// are complete, generated placeholder frames otherwise.
func writeThumbnails(w *bio.Writer, p *Pattern) {
	want := len(p.Colors) + 1
	size := ThumbStride * ThumbHeight
	if len(p.Thumbnails) == want {
		ok := true
		for _, icon := range p.Thumbnails {
			if len(icon) != size {
				ok = false
				break
			}
		}
		if ok {
			for _, icon := range p.Thumbnails {
				w.Write(icon)
			}
			return
		}
		Logger().Warn("pec: thumbnail bytes malformed, writing placeholders")
	}
	frame := placeholderThumbnail()
	for i := 0; i < want; i++ {
		w.Write(frame)
	}
}

// padLabel truncates or space-pads the label to the 16-byte wire field.
// Truncation backs off to a rune boundary so a multibyte label never decodes
// with a replacement character.
func padLabel(s string) []byte {
	if len(s) > 16 {
		cut := 16
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	b := make([]byte, 16)
	copy(b, s)
	for i := len(s); i < 16; i++ {
		b[i] = 0x20
	}
	return b
}
