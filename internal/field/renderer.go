package field

import "math/rand"

// Renderer owns a field State and the viewport/pointer inputs that drive it.
// It is not safe for concurrent use; the game loop is its only caller.
type Renderer struct {
	state    State
	viewport Viewport
	pointer  Pointer
}

// New creates a renderer with n particles seeded over vp.
func New(n int, vp Viewport, rng *rand.Rand) *Renderer {
	return &Renderer{
		state:    Seed(n, vp, rng),
		viewport: vp,
	}
}

// NewFromState wraps an existing state, for replay and tests.
func NewFromState(st State, vp Viewport) *Renderer {
	return &Renderer{state: st.Clone(), viewport: vp}
}

// Resize changes the bounds used from the next frame on. Particles keep
// their positions even if they now lie outside.
func (r *Renderer) Resize(width, height float64) {
	r.viewport = Viewport{Width: width, Height: height}
}

// PointerMoved records the cursor position.
func (r *Renderer) PointerMoved(x, y float64) {
	r.pointer = Pointer{X: x, Y: y, Known: true}
}

// Frame advances the field by one step and returns its draw commands.
func (r *Renderer) Frame() Frame {
	next, f := Step(r.state, r.viewport, r.pointer)
	r.state = next
	return f
}

// State returns a copy of the current particles.
func (r *Renderer) State() State { return r.state.Clone() }

func (r *Renderer) Viewport() Viewport { return r.viewport }

func (r *Renderer) Pointer() Pointer { return r.pointer }
