package field

import "image/color"

// Kind identifies a draw command.
type Kind int

const (
	// Clear fills the rectangle (X0,Y0)-(X1,Y1) with Color.
	Clear Kind = iota
	// Disc is a filled circle of Radius centred on (X0,Y0).
	Disc
	// Line is a 1px stroke from (X0,Y0) to (X1,Y1).
	Line
)

func (k Kind) String() string {
	switch k {
	case Clear:
		return "clear"
	case Disc:
		return "disc"
	case Line:
		return "line"
	default:
		return "unknown"
	}
}

// Command is one immediate-mode drawing instruction.
type Command struct {
	Kind   Kind
	X0, Y0 float64
	X1, Y1 float64
	Radius float64
	Color  color.NRGBA
}

// Frame is everything Step produced for one display frame.
type Frame struct {
	Commands []Command
	// PairChecks counts particle-particle distance tests.
	PairChecks int
}

// Count returns how many commands of kind k the frame holds.
func (f Frame) Count(k Kind) int {
	n := 0
	for _, c := range f.Commands {
		if c.Kind == k {
			n++
		}
	}
	return n
}

func line(x0, y0, x1, y1 float64, c color.NRGBA) Command {
	return Command{Kind: Line, X0: x0, Y0: y0, X1: x1, Y1: y1, Color: c}
}
