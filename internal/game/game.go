// Package game is the window around the stopwatch: it turns mouse and
// keyboard input into controller calls, feeds the particle field its
// pointer and viewport, and paints everything each frame.
package game

import (
	"errors"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/stopwatch/internal/clock"
	"github.com/iburimskiy/stopwatch/internal/config"
	"github.com/iburimskiy/stopwatch/internal/field"
	"github.com/iburimskiy/stopwatch/internal/stopwatch"
)

type action int

const (
	actionNone action = iota
	actionToggle
	actionPause
	actionReset
	actionLap
	actionExport
	actionQuit
)

var keyBindings = map[ebiten.Key]action{
	ebiten.KeySpace:  actionToggle,
	ebiten.KeyP:      actionPause,
	ebiten.KeyR:      actionReset,
	ebiten.KeyL:      actionLap,
	ebiten.KeyE:      actionExport,
	ebiten.KeyEscape: actionQuit,
	ebiten.KeyQ:      actionQuit,
}

// Clicker plays the feedback sound.
type Clicker interface {
	Click()
}

type silent struct{}

func (silent) Click() {}

// Deps are the game's collaborators. Zero fields get defaults: real clock,
// time-seeded rand, no sound, no export or notice sinks.
type Deps struct {
	Clock    clock.Clock
	Rand     *rand.Rand
	Files    stopwatch.FileSink
	Notifier stopwatch.Notifier
	Sound    Clicker
	Logger   *log.Logger
}

type Game struct {
	logger *log.Logger

	sched   *clock.Scheduler
	ctrl    *stopwatch.Controller
	display *timeDisplay
	laps    *lapList
	field   *field.Renderer
	sound   Clicker

	buttons []*button

	// viewport as last reported by Layout, and as applied to the field
	outsideW, outsideH int
	width, height      int

	cursorSeen bool
	cursorX    int
	cursorY    int

	lastErr error
}

func New(cfg *config.Config, deps Deps) *Game {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Sound == nil {
		deps.Sound = silent{}
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}

	g := &Game{
		logger:  deps.Logger,
		sched:   clock.NewScheduler(deps.Clock),
		display: &timeDisplay{},
		laps:    newLapList(config.LapListRows),
		sound:   deps.Sound,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}

	g.ctrl = stopwatch.New(deps.Clock, g.sched, stopwatch.Sinks{
		Display:  g.display,
		Laps:     g.laps,
		Files:    deps.Files,
		Notifier: deps.Notifier,
	},
		stopwatch.WithLogger(deps.Logger),
		stopwatch.WithStartHook(g.sound.Click),
		stopwatch.WithLapHook(func(stopwatch.LapEntry) { g.sound.Click() }),
	)

	g.field = field.New(field.DefaultCount, field.Viewport{
		Width:  float64(g.width),
		Height: float64(g.height),
	}, deps.Rand)

	g.buttons = []*button{
		{action: actionToggle, label: func() string {
			if g.ctrl.Running() {
				return "Stop"
			}
			return "Start"
		}},
		{action: actionPause, label: staticLabel("Pause")},
		{action: actionReset, label: staticLabel("Reset")},
		{action: actionLap, label: staticLabel("Lap")},
		{action: actionExport, label: staticLabel("Export")},
	}
	g.placeButtons()

	return g
}

func staticLabel(s string) func() string {
	return func() string { return s }
}

func (g *Game) Update() error {
	g.applyLayout()

	mouseX, mouseY := ebiten.CursorPosition()
	g.trackPointer(mouseX, mouseY)

	justPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	justReleased := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	for _, b := range g.buttons {
		if b.update(mouseX, mouseY, justPressed, justReleased) {
			if err := g.handle(b.action); err != nil {
				return err
			}
		}
	}

	for key, a := range keyBindings {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.handle(a); err != nil {
				return err
			}
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 && g.overList(mouseX, mouseY) {
		if dy > 0 {
			g.laps.scroll(-1)
		} else {
			g.laps.scroll(1)
		}
	}

	g.sched.Poll()
	return nil
}

// handle runs one user action. Only quitting returns an error
// (ebiten.Termination); failures are kept for the status line.
func (g *Game) handle(a action) error {
	switch a {
	case actionToggle:
		g.ctrl.Start()
	case actionPause:
		g.ctrl.Pause()
	case actionReset:
		g.ctrl.Reset()
		g.lastErr = nil
	case actionLap:
		g.ctrl.RecordLap()
	case actionExport:
		if err := g.ctrl.ExportLaps(); err != nil {
			g.logger.Printf("export failed: %v", err)
			g.lastErr = err
		}
	case actionQuit:
		g.ctrl.Pause()
		return ebiten.Termination
	}
	return nil
}

// trackPointer reports cursor movement to the field. The first sample only
// sets a baseline, so the pointer stays unknown until it actually moves.
func (g *Game) trackPointer(x, y int) {
	if !g.cursorSeen {
		g.cursorSeen = true
		g.cursorX, g.cursorY = x, y
		return
	}
	if x == g.cursorX && y == g.cursorY {
		return
	}
	g.cursorX, g.cursorY = x, y
	g.field.PointerMoved(float64(x), float64(y))
}

func (g *Game) applyLayout() {
	if g.outsideW <= 0 || g.outsideH <= 0 {
		return
	}
	if g.outsideW == g.width && g.outsideH == g.height {
		return
	}
	g.width, g.height = g.outsideW, g.outsideH
	g.field.Resize(float64(g.width), float64(g.height))
	g.placeButtons()
}

func (g *Game) placeButtons() {
	p := layoutPanel(g.width, g.height)
	for i, b := range g.buttons {
		b.rect = p.buttons[i]
	}
}

func (g *Game) overList(x, y int) bool {
	return layoutPanel(g.width, g.height).list.contains(x, y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawFrame(screen, g.field.Frame())

	p := layoutPanel(g.width, g.height)
	g.drawTime(screen, p)
	for _, b := range g.buttons {
		g.drawButton(screen, b)
	}
	g.drawLaps(screen, p)

	status := "Stopped - Space to start"
	if g.ctrl.Running() {
		status = "Running - Space to stop, L for a lap"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawTime(screen *ebiten.Image, p panel) {
	const (
		mainScale = 6.0
		fracScale = 3.0
	)
	cur := g.display.current
	mainW := textWidth(cur.Time, mainScale)
	fracW := textWidth(cur.Fraction, fracScale)
	x := float64(p.centerX) - (mainW+fracW)/2
	y := float64(p.timeY)

	drawText(screen, cur.Time, x, y, mainScale, color.White)
	// baseline-align the fragment with the large digits
	drawText(screen, cur.Fraction, x+mainW, y+13*(mainScale-fracScale), fracScale, color.RGBA{R: 160, G: 160, B: 160, A: 255})
}

func (g *Game) drawButton(screen *ebiten.Image, b *button) {
	r := b.rect
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), buttonColor(b), false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	label := b.label()
	const scale = 1.5
	tx := float64(r.X) + (float64(r.W)-textWidth(label, scale))/2
	ty := float64(r.Y) + (float64(r.H)-13*scale)/2
	drawText(screen, label, tx, ty, scale, color.White)
}

func (g *Game) drawLaps(screen *ebiten.Image, p panel) {
	r := p.list
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	y := r.Y + config.LapListPadding
	for _, row := range g.laps.visibleRows() {
		vector.DrawFilledRect(screen, float32(r.X+config.LapListPadding), float32(y), float32(r.W-2*config.LapListPadding), config.LapRowHeight-4, color.RGBA{R: 38, G: 38, B: 38, A: 255}, false)
		drawText(screen, row, float64(r.X+2*config.LapListPadding), float64(y+2), 1.2, color.White)
		y += config.LapRowHeight
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until the user quits.
func Run(cfg *config.Config, g *Game) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TPS)
	ebiten.SetVsyncEnabled(cfg.Window.Vsync)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
