// Package field simulates the decorative background: a fixed set of dots
// drifting inside the viewport, bouncing off its edges and linked by faint
// lines to close neighbours and to the pointer.
//
// Step is pure. It takes the current State plus viewport and pointer inputs
// and returns the next State together with the draw commands for the frame,
// so the physics can be tested without a window. Renderer owns a State for
// callers that just want to advance it once per display frame.
package field

import (
	"image/color"
	"math"
	"math/rand"
)

const (
	DefaultCount = 100

	// MaxSpeed bounds the initial per-axis speed in pixels per frame.
	MaxSpeed = 0.25

	DotRadius           = 2
	LinkDistance        = 100
	PointerLinkDistance = 150
)

var (
	Background  = color.NRGBA{R: 0x17, G: 0x17, B: 0x17, A: 0xff}
	DotColor    = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	LinkColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 26}
	PointerLink = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 38}
)

// Particle is a point with a constant per-frame displacement.
type Particle struct {
	X, Y   float64
	VX, VY float64
}

// Viewport is the drawable area and the particles' bounding box.
type Viewport struct {
	Width, Height float64
}

// Pointer is the last known cursor position. Known stays false until the
// cursor has moved over the viewport.
type Pointer struct {
	X, Y  float64
	Known bool
}

// State is the full simulation state.
type State struct {
	Particles []Particle
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := make([]Particle, len(s.Particles))
	copy(out, s.Particles)
	return State{Particles: out}
}

// Seed scatters n particles uniformly over vp with random velocities in
// [-MaxSpeed, MaxSpeed) on each axis.
func Seed(n int, vp Viewport, rng *rand.Rand) State {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:  rng.Float64() * vp.Width,
			Y:  rng.Float64() * vp.Height,
			VX: (rng.Float64() - 0.5) * 2 * MaxSpeed,
			VY: (rng.Float64() - 0.5) * 2 * MaxSpeed,
		}
	}
	return State{Particles: ps}
}

// Step advances every particle by one frame and returns the commands that
// draw the result.
//
// Particles are processed in index order. Particle i is moved and reflected
// before its links are tested, while particles j > i are still at their
// previous-frame positions. Each unordered pair is tested exactly once, so
// a frame performs n(n-1)/2 distance checks; that quadratic scan is what
// limits how far the particle count could grow.
func Step(st State, vp Viewport, ptr Pointer) (State, Frame) {
	next := st.Clone()
	ps := next.Particles
	n := len(ps)

	f := Frame{
		Commands: make([]Command, 0, 1+n*2),
	}
	f.Commands = append(f.Commands, Command{
		Kind:  Clear,
		X1:    vp.Width,
		Y1:    vp.Height,
		Color: Background,
	})

	for i := range ps {
		p := &ps[i]
		p.X += p.VX
		p.Y += p.VY

		if p.X < 0 || p.X > vp.Width {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > vp.Height {
			p.VY = -p.VY
		}

		f.Commands = append(f.Commands, Command{
			Kind:   Disc,
			X0:     p.X,
			Y0:     p.Y,
			Radius: DotRadius,
			Color:  DotColor,
		})

		for j := i + 1; j < n; j++ {
			f.PairChecks++
			q := ps[j]
			if distance(p.X, p.Y, q.X, q.Y) < LinkDistance {
				f.Commands = append(f.Commands, line(p.X, p.Y, q.X, q.Y, LinkColor))
			}
		}

		if ptr.Known && distance(p.X, p.Y, ptr.X, ptr.Y) < PointerLinkDistance {
			f.Commands = append(f.Commands, line(p.X, p.Y, ptr.X, ptr.Y, PointerLink))
		}
	}

	return next, f
}

func distance(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x0-x1, y0-y1)
}
