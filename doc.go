// Package stitch reads and writes machine-embroidery stitch files in the
// Brother PEC and PES formats.
//
// # Overview
//
// stitch is a pure Go codec for the PEC stitch-block format and the PES
// container format (versions 1 and 6) that embeds it. It operates on fully
// buffered byte slices: callers hand a complete file to [Decode] and receive
// a [Pattern], or hand a [Pattern] to [Encode] and receive a complete file.
// There is no streaming mode and no filesystem access inside the codec.
//
// # Quick Start
//
//	import "github.com/gogpu/stitch"
//
//	data, _ := os.ReadFile("design.pes")
//
//	pat, err := stitch.Decode(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(len(pat.Program), "commands,", len(pat.Colors), "colors")
//
//	out, err := stitch.Encode(pat, stitch.VersionPES6)
//
// # Data Model
//
// A [Pattern] aggregates a [Program] (the ordered stitch commands), a
// [ColorTable] (thread colors, embedded RGB or catalog references), container
// metadata, and the recomputed design [Extents]. Commands are relative: each
// Move or Stitch carries a displacement in device units of 0.1 mm.
//
// # Fidelity
//
// The codec is fail-fast and lossless. Out-of-range deltas, truncated stitch
// streams, unknown versions, and unresolvable color references abort the whole
// operation with a sentinel error from this package; the codec never clamps a
// value or returns a shortened program, because the resulting file could
// stitch incorrectly on a real machine.
//
// # Logging
//
// By default stitch produces no log output. Call [SetLogger] with a
// *slog.Logger to receive debug records describing section offsets and block
// sizes as files are parsed and written.
package stitch
