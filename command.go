package stitch

import "fmt"

// Op identifies the kind of a stitch Command. The set is closed: every
// encoder and decoder in this package switches exhaustively over it.
type Op uint8

const (
	// OpMove displaces the needle without penetrating the fabric.
	OpMove Op = iota

	// OpStitch displaces the needle and penetrates at the new position.
	OpStitch

	// OpColorChange switches the active thread to another color table entry.
	OpColorChange

	// OpTrim cuts the thread at the current position.
	OpTrim

	// OpEnd terminates the program. Exactly one End ends every valid
	// Program; no command may follow it.
	OpEnd
)

// String returns the operation name for diagnostics.
func (op Op) String() string {
	switch op {
	case OpMove:
		return "Move"
	case OpStitch:
		return "Stitch"
	case OpColorChange:
		return "ColorChange"
	case OpTrim:
		return "Trim"
	case OpEnd:
		return "End"
	default:
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
}

// Command is one machine instruction. DX and DY are displacements relative to
// the previous position, in device units of 0.1 mm; they are meaningful only
// for OpMove and OpStitch. ColorIndex references a ColorTable entry and is
// meaningful only for OpColorChange.
type Command struct {
	Op         Op
	DX, DY     int
	ColorIndex int
}

// Move returns a positional change without needle penetration.
func Move(dx, dy int) Command { return Command{Op: OpMove, DX: dx, DY: dy} }

// Stitch returns a needle penetration at the displaced position.
func Stitch(dx, dy int) Command { return Command{Op: OpStitch, DX: dx, DY: dy} }

// ColorChange returns a switch to the color table entry with the given index.
func ColorChange(index int) Command { return Command{Op: OpColorChange, ColorIndex: index} }

// Trim returns a thread cut at the current position.
func Trim() Command { return Command{Op: OpTrim} }

// End returns the program terminator.
func End() Command { return Command{Op: OpEnd} }

// Program is an ordered sequence of commands terminated by exactly one End.
type Program []Command

// Validate checks the Program invariants against its paired color table:
// the last command is the only End, and every ColorChange index resolves in
// colors. Violations return ErrInvalidProgram or ErrUnknownColorIndex.
func (p Program) Validate(colors ColorTable) error {
	if len(p) == 0 {
		return fmt.Errorf("empty program: %w", ErrInvalidProgram)
	}
	if p[len(p)-1].Op != OpEnd {
		return fmt.Errorf("program does not end with End: %w", ErrInvalidProgram)
	}
	for i, cmd := range p {
		if cmd.Op == OpEnd && i != len(p)-1 {
			return fmt.Errorf("End at command %d followed by %d more commands: %w",
				i, len(p)-1-i, ErrInvalidProgram)
		}
		if cmd.Op == OpColorChange {
			if _, ok := colors.Lookup(cmd.ColorIndex); !ok {
				return fmt.Errorf("command %d references color %d: %w",
					i, cmd.ColorIndex, ErrUnknownColorIndex)
			}
		}
	}
	return nil
}

// Extents is the bounding box of the cumulative running position over a
// Program, in device units. Move and Stitch both advance the position;
// ColorChange, Trim, and End do not.
type Extents struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the horizontal span of the bounding box.
func (e Extents) Width() int { return e.MaxX - e.MinX }

// Height returns the vertical span of the bounding box.
func (e Extents) Height() int { return e.MaxY - e.MinY }

// Extents recomputes the bounding box of the running position. The result is
// derived from the commands alone; decoded patterns never trust the extents
// recorded in the file. An empty program yields the zero Extents.
func (p Program) Extents() Extents {
	var e Extents
	x, y := 0, 0
	first := true
	for _, cmd := range p {
		if cmd.Op != OpMove && cmd.Op != OpStitch {
			continue
		}
		x += cmd.DX
		y += cmd.DY
		if first {
			e = Extents{MinX: x, MinY: y, MaxX: x, MaxY: y}
			first = false
			continue
		}
		e.MinX = min(e.MinX, x)
		e.MinY = min(e.MinY, y)
		e.MaxX = max(e.MaxX, x)
		e.MaxY = max(e.MaxY, y)
	}
	return e
}
