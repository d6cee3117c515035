// Command stitchinfo inspects PEC and PES embroidery files.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/stitch"
)

func main() {
	var (
		verbose    = flag.Bool("v", false, "enable debug logging")
		thumbnails = flag.Bool("thumbnails", true, "read thumbnail sections")
	)
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: stitchinfo [-v] [-thumbnails=false] file.pes ...")
	}
	if *verbose {
		stitch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var opts []stitch.DecodeOption
	if !*thumbnails {
		opts = append(opts, stitch.WithoutThumbnails())
	}

	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		if kind := stitch.Sniff(data); kind == stitch.FormatUnknown {
			log.Fatalf("%s: not a PEC or PES file", path)
		}
		pat, err := stitch.Decode(data, opts...)
		if err != nil {
			log.Fatalf("decode %s: %v", path, err)
		}
		printPattern(path, pat)
	}
}

func printPattern(path string, pat *stitch.Pattern) {
	var stitches, moves, trims, colorChanges int
	for _, cmd := range pat.Program {
		switch cmd.Op {
		case stitch.OpStitch:
			stitches++
		case stitch.OpMove:
			moves++
		case stitch.OpTrim:
			trims++
		case stitch.OpColorChange:
			colorChanges++
		}
	}

	fmt.Printf("%s: %s", path, pat.Meta.Version)
	if pat.Meta.Label != "" {
		fmt.Printf(" %q", pat.Meta.Label)
	}
	fmt.Println()
	fmt.Printf("  stitches %d, jumps %d, trims %d, color changes %d\n",
		stitches, moves, trims, colorChanges)
	e := pat.Extents
	fmt.Printf("  extents %.1f x %.1f mm (x %d..%d, y %d..%d)\n",
		float64(e.Width())/10, float64(e.Height())/10,
		e.MinX, e.MaxX, e.MinY, e.MaxY)
	if pat.Meta.Hoop != nil {
		fmt.Printf("  hoop %d x %d mm\n", pat.Meta.Hoop.Width, pat.Meta.Hoop.Height)
	}
	for _, entry := range pat.Colors {
		rgb, err := pat.Colors.Resolve(entry.Index)
		if err != nil {
			fmt.Printf("  color %d: unresolvable\n", entry.Index)
			continue
		}
		name := entry.Description
		if name == "" {
			if th, ok := stitch.CatalogThreadByID(entry.CatalogID); ok {
				name = th.Name
			}
		}
		fmt.Printf("  color %d: #%02X%02X%02X %s\n", entry.Index, rgb.R, rgb.G, rgb.B, name)
	}
}
