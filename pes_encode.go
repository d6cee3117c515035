package stitch

import (
	"strconv"

	"github.com/gogpu/stitch/internal/bio"
)

// Encode serializes a Pattern as a PES container of the given version
// ("0001" or "0060"), or as a standalone PEC file when version is
// VersionPEC. Serialization is two-pass: the header and geometry section is
// sized first, then the directory offset of the PEC block is fixed and the
// final buffer assembled. A version absent from the version table fails with
// ErrUnsupportedVersion; a Pattern whose object list exceeds the version's
// capability fails with ErrVersionCapabilityExceeded.
func Encode(p *Pattern, version string, opts ...EncodeOption) ([]byte, error) {
	if version == VersionPEC {
		return EncodePEC(p, opts...)
	}
	layout, ok := versionTable[version]
	if !ok {
		return nil, errAtf("pes header", -1, ErrUnsupportedVersion, "version %q", version)
	}
	if n := len(p.Meta.ObjectOffsets); n > layout.maxObjects {
		return nil, errAtf("pes container", -1, ErrVersionCapabilityExceeded,
			"%d embroidery objects, version %s supports %d", n, version, layout.maxObjects)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := buildEncodeOptions(opts)

	geom := buildGeometry(p, layout)

	// Pass one: serialize the header and geometry blocks into a scratch
	// buffer to learn their size.
	section := &bio.Writer{}
	for _, kind := range layout.blocks {
		switch kind {
		case blockHeaderV1:
			writeHeaderV1(section, geom)
		case blockHeaderV6:
			if err := writeHeaderV6(section, p, geom); err != nil {
				return nil, err
			}
		case blockGeometry:
			writeGeometry(section, layout, geom)
		}
	}

	// Pass two: the PEC block offset is now known; assemble the file.
	pecPos := 8 + 4 + section.Len()
	w := &bio.Writer{}
	w.String("#PES" + version)
	w.U32(uint32(pecPos))
	w.Write(section.Bytes())

	colorBytes, err := writePECContent(w, p, &o)
	if err != nil {
		return nil, err
	}
	for _, kind := range layout.blocks {
		if kind != blockAddendum {
			continue
		}
		if err := writeAddendum(w, p, colorBytes); err != nil {
			return nil, err
		}
	}
	Logger().Debug("pes: container written",
		"version", version, "pec_offset", pecPos, "size", w.Len())
	return w.Bytes(), nil
}

// segmentBlock is one CSewSeg run: consecutive stitches or a single jump,
// with coordinates already shifted into the section's frame.
type segmentBlock struct {
	flag      uint16 // 0 stitch run, 1 jump
	colorCode int
	points    [][2]int
}

// geometry is everything the PES header and CSewSeg section need about the
// stitch program: bounds, segment runs, and the per-section color log.
type geometry struct {
	hasStitches   bool
	width, height int
	transX        float32
	transY        float32
	blocks        []segmentBlock
	colorLog      [][2]int // section index, color code
}

// buildGeometry converts the relative command stream into the absolute
// segment runs PES records next to the PEC payload. Color codes index the
// version's thread source: the pattern's own chart for version 6, the
// built-in catalog otherwise.
func buildGeometry(p *Pattern, layout versionLayout) geometry {
	var g geometry
	for _, cmd := range p.Program {
		if cmd.Op == OpMove || cmd.Op == OpStitch {
			g.hasStitches = true
			break
		}
	}
	if !g.hasStitches {
		return g
	}

	e := p.Program.Extents()
	g.width = e.Width()
	g.height = e.Height()

	// Hoop placement transform carried in the CEmbOne header. The hoop
	// here is the fixed 130×180 frame PES positions sections against.
	const hoopW, hoopH = 1300, 1800
	g.transX = 350 + hoopW/2 - float32(g.width)/2
	g.transY = 100 + float32(g.height) + hoopH/2 - float32(g.height)/2

	adjX, adjY := e.MinX, e.MaxY
	chart := chartThreads(p, layout)

	colorIndex := 0
	colorCode := nearestChartCode(p.Colors, colorIndex, chart)
	stitchedX, stitchedY := 0, 0
	x, y := 0, 0

	flush := func(blk segmentBlock) {
		section := len(g.blocks)
		blk.colorCode = colorCode
		if len(g.colorLog) == 0 || g.colorLog[len(g.colorLog)-1][1] != colorCode {
			g.colorLog = append(g.colorLog, [2]int{section, colorCode})
		}
		g.blocks = append(g.blocks, blk)
	}

	i := 0
	for i < len(p.Program) {
		op := p.Program[i].Op
		j := i
		for j < len(p.Program) && p.Program[j].Op == op {
			j++
		}
		run := p.Program[i:j]

		switch op {
		case OpMove:
			start := [2]int{stitchedX - adjX, stitchedY - adjY}
			for _, cmd := range run {
				x += cmd.DX
				y += cmd.DY
			}
			flush(segmentBlock{
				flag:   1,
				points: [][2]int{start, {x - adjX, y - adjY}},
			})

		case OpStitch:
			pts := make([][2]int, 0, len(run))
			for _, cmd := range run {
				x += cmd.DX
				y += cmd.DY
				stitchedX, stitchedY = x, y
				pts = append(pts, [2]int{x - adjX, y - adjY})
			}
			flush(segmentBlock{flag: 0, points: pts})

		case OpColorChange:
			colorIndex++
			colorCode = nearestChartCode(p.Colors, colorIndex, chart)
		}
		i = j
	}
	return g
}

// chartThreads returns the colors segment blocks are matched against.
func chartThreads(p *Pattern, layout versionLayout) []Color {
	if layout.hasHoop { // version 6: the pattern's own chart
		out := make([]Color, 0, len(p.Colors))
		for _, e := range p.Colors {
			rgb, err := e.resolve()
			if err != nil {
				rgb = Color{}
			}
			out = append(out, rgb)
		}
		return out
	}
	out := make([]Color, len(threadCatalog))
	for i, th := range threadCatalog {
		out[i] = th.RGB
	}
	return out
}

// nearestChartCode resolves the colorIndex-th table entry and returns the
// index of the closest chart color. Out-of-table indices fall back to the
// first chart entry; Validate has already rejected programs that reference
// them explicitly.
func nearestChartCode(colors ColorTable, colorIndex int, chart []Color) int {
	if colorIndex >= len(colors) || len(chart) == 0 {
		return 0
	}
	rgb, err := colors[colorIndex].resolve()
	if err != nil {
		return 0
	}
	best, bestDist := 0, int(^uint(0)>>1)
	for i, c := range chart {
		if d := colorDistance(rgb, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// writeHeaderV1 writes the fixed version 1 header.
func writeHeaderV1(w *bio.Writer, g geometry) {
	w.U16(0x01) // scale to fit
	w.U16(0x01) // 130×180 hoop
	if g.hasStitches {
		w.U16(0x0001)
	} else {
		w.U16(0x0000)
	}
}

// writeHeaderV6 writes the version 6 header: metadata strings, hoop and
// design-page fields, the affine transform, and the thread chart.
func writeHeaderV6(w *bio.Writer, p *Pattern, g geometry) error {
	hoop := Hoop{Width: 100, Height: 100}
	if p.Meta.Hoop != nil {
		hoop = *p.Meta.Hoop
	}

	w.U16(0x01)
	w.String("02")
	writePESString8(w, p.Meta.Name)
	writePESString8(w, p.Meta.Category)
	writePESString8(w, p.Meta.Author)
	writePESString8(w, p.Meta.Keywords)
	writePESString8(w, p.Meta.Comments)

	w.U16(0)                    // OptimizeHoopChange
	w.U16(0)                    // DesignPageIsCustom
	w.U16(uint16(hoop.Width))   // hoop width, mm
	w.U16(uint16(hoop.Height))  // hoop height, mm
	w.U16(0)                    // UseExistingDesignArea
	w.U16(0xC8)                 // design width
	w.U16(0xC8)                 // design height
	w.U16(0x64)                 // design page section width
	w.U16(0x64)                 // design page section height
	w.U16(0x64)                 // p6
	w.U16(0x07)                 // design page background color
	w.U16(0x13)                 // design page foreground color
	w.U16(0x01)                 // ShowGrid
	w.U16(0x01)                 // WithAxes
	w.U16(0x00)                 // SnapToGrid
	w.U16(100)                  // GridInterval
	w.U16(0x01)                 // p9
	w.U16(0x00)                 // OptimizeEntryExitPoints
	writePESString8(w, p.Meta.ImageFile)

	w.F32(1)
	w.F32(0)
	w.F32(0)
	w.F32(1)
	w.F32(0)
	w.F32(0)
	w.U16(0) // programmable fill patterns
	w.U16(0) // motif patterns
	w.U16(0) // feather patterns

	w.U16(uint16(len(p.Colors)))
	for _, e := range p.Colors {
		if err := writePESThread(w, e); err != nil {
			return err
		}
	}
	if g.hasStitches {
		w.U16(0x0001) // distinct blocks
	} else {
		w.U16(0x0000)
	}
	return nil
}

// writePESThread writes one thread chart record.
func writePESThread(w *bio.Writer, e ColorEntry) error {
	num := e.CatalogNumber
	if num == "" && e.CatalogID != 0 {
		num = strconv.Itoa(e.CatalogID)
	}
	writePESString8(w, num)
	rgb, err := e.resolve()
	if err != nil {
		return errAt("pes thread chart", -1, err)
	}
	w.U8(rgb.R)
	w.U8(rgb.G)
	w.U8(rgb.B)
	w.U8(0)
	w.U32(0xA) // thread kind
	writePESString8(w, e.Description)
	writePESString8(w, e.Brand)
	writePESString8(w, e.Chart)
	return nil
}

// writeGeometry writes the CEmbOne/CSewSeg section and, for versions with a
// multi-object directory, the directory entries.
func writeGeometry(w *bio.Writer, layout versionLayout, g geometry) {
	if !g.hasStitches {
		w.U16(0x0000) // no more sections
		w.U16(0x0000)
		return
	}
	w.U16(0xFFFF) // more sections follow
	w.U16(0x0000)

	writePESString16(w, "CEmbOne")
	for i := 0; i < 8; i++ {
		w.U16(0)
	}
	w.F32(1)
	w.F32(0)
	w.F32(0)
	w.F32(1)
	w.F32(g.transX)
	w.F32(g.transY)
	w.U16(1)
	w.U16(0)
	w.U16(0)
	w.U16(uint16(g.width))
	w.U16(uint16(g.height))
	w.Fill(8, 0)
	w.U16(uint16(len(g.blocks)))

	w.U16(0xFFFF)
	w.U16(0x0000)
	writePESString16(w, "CSewSeg")
	for i, blk := range g.blocks {
		if i > 0 {
			w.U16(0x8003) // section continuation
		}
		w.U16(blk.flag)
		w.U16(uint16(blk.colorCode))
		w.U16(uint16(len(blk.points)))
		for _, pt := range blk.points {
			w.U16(uint16(int16(pt[0])))
			w.U16(uint16(int16(pt[1])))
		}
	}
	w.U16(uint16(len(g.colorLog)))
	for _, entry := range g.colorLog {
		w.U16(uint16(entry[0]))
		w.U16(uint16(entry[1]))
	}
	w.U16(0x0000)
	w.U16(0x0000)

	if layout.maxObjects > 1 {
		// Object directory: one entry per color section.
		w.U32(0)
		w.U32(0)
		for i := range g.colorLog {
			w.U32(uint32(i))
			w.U32(0)
		}
	}
}

// writeAddendum writes the version 6 trailer: the PEC palette index list
// padded to 128 bytes, a reserved record per thread, and the thread RGB
// values.
func writeAddendum(w *bio.Writer, p *Pattern, colorBytes []byte) error {
	if len(colorBytes) > 128 {
		return errAtf("pes addendum", -1, ErrVersionCapabilityExceeded,
			"%d colors, the addendum palette field holds at most 128", len(colorBytes))
	}
	w.Write(colorBytes)
	w.Fill(128-len(colorBytes), 0x20)
	w.Fill(0x90*len(p.Colors), 0x00)
	for _, e := range p.Colors {
		rgb, err := e.resolve()
		if err != nil {
			return errAt("pes addendum", -1, err)
		}
		w.U8(rgb.R)
		w.U8(rgb.G)
		w.U8(rgb.B)
	}
	w.U16(0x0000)
	return nil
}

// writePESString8 writes a length-prefixed string (one-byte length).
func writePESString8(w *bio.Writer, s string) {
	if len(s) > 255 {
		s = s[:255]
	}
	w.U8(byte(len(s)))
	w.String(s)
}

// writePESString16 writes a length-prefixed string (two-byte length).
func writePESString16(w *bio.Writer, s string) {
	w.U16(uint16(len(s)))
	w.String(s)
}
