package stitch

import (
	"github.com/gogpu/stitch/internal/bio"
)

// Decode decodes a complete embroidery file. PES containers ("#PES" magic)
// and standalone PEC files ("#PEC" magic) are both accepted; anything else
// fails with ErrMalformedHeader. The returned Pattern is owned entirely by
// the caller.
func Decode(data []byte, opts ...DecodeOption) (*Pattern, error) {
	switch Sniff(data) {
	case FormatPEC:
		return DecodePEC(data, opts...)
	case FormatPES:
		return decodePES(data, opts)
	default:
		n := min(len(data), 8)
		return nil, errAtf("pes header", 0, ErrMalformedHeader, "bad magic %q", data[:n])
	}
}

// pesHeaderV6 holds the fields parsed from a version 6 header block.
type pesHeaderV6 struct {
	name, category, author string
	keywords, comments     string
	imageFile              string
	hoop                   Hoop
	chart                  ColorTable
}

func decodePES(data []byte, opts []DecodeOption) (*Pattern, error) {
	o := buildDecodeOptions(opts)
	r := bio.NewReader(data)

	// Magic is 8 bytes: "#PES" plus a 4-ASCII-digit version tag. The tag
	// gates everything: unknown versions fail before any block parsing.
	if err := r.Skip(4); err != nil {
		return nil, errAt("pes header", 0, short(err))
	}
	tagBytes, err := r.Bytes(4)
	if err != nil {
		return nil, errAt("pes header", r.Offset(), short(err))
	}
	for _, c := range tagBytes {
		if c < '0' || c > '9' {
			return nil, errAtf("pes header", 4, ErrMalformedHeader,
				"version tag %q is not 4 ASCII digits", tagBytes)
		}
	}
	tag := string(tagBytes)
	layout, ok := versionTable[tag]
	if !ok {
		return nil, errAtf("pes header", 4, ErrUnsupportedVersion, "version %q", tag)
	}

	pecPos, err := r.U32()
	if err != nil {
		return nil, errAt("pes header", r.Offset(), short(err))
	}
	if int(pecPos) >= len(data) {
		return nil, errAtf("pes header", 8, ErrMalformedHeader,
			"pec block offset %#x beyond buffer of %d bytes", pecPos, len(data))
	}
	Logger().Debug("pes: container opened", "version", tag, "pec_offset", pecPos)

	var (
		pat *Pattern
		hdr pesHeaderV6
	)
	for _, kind := range layout.blocks {
		switch kind {
		case blockHeaderV1:
			// Version 1 headers hold nothing the decoder needs; the
			// PEC block offset already came from the directory.

		case blockHeaderV6:
			if err := readHeaderV6(r, &hdr); err != nil {
				return nil, err
			}

		case blockGeometry, blockAddendum:
			// Geometry duplicates the stitch program and the
			// addendum duplicates the color list; both are
			// regenerated on encode and skipped on decode.

		case blockPECPayload:
			if err := r.Seek(int(pecPos)); err != nil {
				return nil, errAt("pec block", int(pecPos), short(err))
			}
			chart := hdr.chart
			if len(chart) == 0 {
				chart = o.chart
			}
			pat, err = readPECContent(r, chart, &o)
			if err != nil {
				return nil, err
			}
		}
	}
	if pat == nil {
		return nil, errAtf("pes container", -1, ErrMalformedHeader, "no pec block in layout")
	}

	pat.Meta.Version = tag
	pat.Meta.ObjectOffsets = []uint32{pecPos}
	pat.Meta.Name = hdr.name
	pat.Meta.Category = hdr.category
	pat.Meta.Author = hdr.author
	pat.Meta.Keywords = hdr.keywords
	pat.Meta.Comments = hdr.comments
	pat.Meta.ImageFile = hdr.imageFile
	if layout.hasHoop {
		h := hdr.hoop
		pat.Meta.Hoop = &h
	}
	return pat, nil
}

// readHeaderV6 parses the version 6 header block, leaving the reader just
// past the thread chart. Files using programmable fills, motifs, or feather
// patterns keep their chart in sections this codec does not parse; decoding
// then falls back to the built-in catalog.
func readHeaderV6(r *bio.Reader, hdr *pesHeaderV6) error {
	if err := r.Skip(4); err != nil {
		return errAt("pes header", r.Offset(), short(err))
	}
	for _, dst := range []*string{
		&hdr.name, &hdr.category, &hdr.author, &hdr.keywords, &hdr.comments,
	} {
		s, err := readPESString8(r)
		if err != nil {
			return err
		}
		*dst = s
	}

	if err := r.Skip(4); err != nil { // hoop-change and design-page flags
		return errAt("pes header", r.Offset(), short(err))
	}
	hoopW, err := r.U16()
	if err != nil {
		return errAt("pes header", r.Offset(), short(err))
	}
	hoopH, err := r.U16()
	if err != nil {
		return errAt("pes header", r.Offset(), short(err))
	}
	hdr.hoop = Hoop{Width: int(hoopW), Height: int(hoopH)}
	if err := r.Skip(28); err != nil { // design-page fields
		return errAt("pes header", r.Offset(), short(err))
	}

	hdr.imageFile, err = readPESString8(r)
	if err != nil {
		return err
	}
	if err := r.Skip(24); err != nil { // affine transform
		return errAt("pes header", r.Offset(), short(err))
	}

	for _, section := range []string{"programmable fills", "motifs", "feather patterns"} {
		count, err := r.U16()
		if err != nil {
			return errAt("pes header", r.Offset(), short(err))
		}
		if count != 0 {
			Logger().Warn("pes: unparsed header section, using catalog colors",
				"section", section, "count", count)
			return nil
		}
	}

	threadCount, err := r.U16()
	if err != nil {
		return errAt("pes header", r.Offset(), short(err))
	}
	hdr.chart = make(ColorTable, 0, threadCount)
	for i := 0; i < int(threadCount); i++ {
		e, err := readPESThread(r, i)
		if err != nil {
			return err
		}
		hdr.chart = append(hdr.chart, e)
	}
	Logger().Debug("pes: header parsed", "threads", len(hdr.chart),
		"hoop_w", hdr.hoop.Width, "hoop_h", hdr.hoop.Height)
	return nil
}

// readPESThread parses one thread chart record.
func readPESThread(r *bio.Reader, index int) (ColorEntry, error) {
	e := ColorEntry{Index: index}
	var err error
	if e.CatalogNumber, err = readPESString8(r); err != nil {
		return e, err
	}
	rgb, err := r.Bytes(3)
	if err != nil {
		return e, errAt("pes thread chart", r.Offset(), short(err))
	}
	e.RGB = &Color{R: rgb[0], G: rgb[1], B: rgb[2]}
	if err := r.Skip(5); err != nil { // reserved byte + thread kind
		return e, errAt("pes thread chart", r.Offset(), short(err))
	}
	if e.Description, err = readPESString8(r); err != nil {
		return e, err
	}
	if e.Brand, err = readPESString8(r); err != nil {
		return e, err
	}
	if e.Chart, err = readPESString8(r); err != nil {
		return e, err
	}
	return e, nil
}

// readPESString8 reads a length-prefixed string (one-byte length).
func readPESString8(r *bio.Reader) (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", errAt("pes header", r.Offset(), short(err))
	}
	if n == 0 {
		return "", nil
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", errAt("pes header", r.Offset(), short(err))
	}
	return decodeText(b), nil
}
