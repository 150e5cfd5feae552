package game

import (
	"github.com/iburimskiy/stopwatch/internal/config"
	"github.com/iburimskiy/stopwatch/internal/stopwatch"
)

type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// button is a clickable rectangle. A click is a press and a release that
// both happen over it.
type button struct {
	label  func() string
	action action
	rect   rect

	hovered bool
	pressed bool
}

// update feeds one tick of mouse state and reports whether the button was
// clicked.
func (b *button) update(mx, my int, justPressed, justReleased bool) bool {
	b.hovered = b.rect.contains(mx, my)

	if b.hovered && justPressed {
		b.pressed = true
	}
	clicked := false
	if justReleased {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	return clicked
}

// panel positions everything drawn above the particle field.
type panel struct {
	timeY   int
	centerX int
	buttons [5]rect
	list    rect
}

func layoutPanel(width, height int) panel {
	rowWidth := 5*config.ButtonWidth + 4*config.ButtonGap
	listHeight := config.LapListRows*config.LapRowHeight + 2*config.LapListPadding
	total := 100 + config.ButtonHeight + 24 + listHeight

	top := (height - total) / 2
	if top < 30 {
		top = 30
	}

	p := panel{
		timeY:   top,
		centerX: width / 2,
	}

	left := (width - rowWidth) / 2
	buttonY := top + 100
	for i := range p.buttons {
		p.buttons[i] = rect{
			X: left + i*(config.ButtonWidth+config.ButtonGap),
			Y: buttonY,
			W: config.ButtonWidth,
			H: config.ButtonHeight,
		}
	}

	p.list = rect{
		X: (width - config.LapListWidth) / 2,
		Y: buttonY + config.ButtonHeight + 24,
		W: config.LapListWidth,
		H: listHeight,
	}
	return p
}

// lapList is the on-screen lap log. It keeps the newest entry in view
// whenever one is appended; the wheel can scroll back.
type lapList struct {
	rows    []string
	offset  int
	visible int
}

func newLapList(visible int) *lapList {
	return &lapList{visible: visible}
}

func (l *lapList) AppendLap(e stopwatch.LapEntry) {
	l.rows = append(l.rows, e.String())
	l.offset = l.maxOffset()
}

func (l *lapList) ClearLaps() {
	l.rows = nil
	l.offset = 0
}

func (l *lapList) maxOffset() int {
	if len(l.rows) <= l.visible {
		return 0
	}
	return len(l.rows) - l.visible
}

// scroll moves the window by delta rows, positive towards newer entries.
func (l *lapList) scroll(delta int) {
	l.offset += delta
	if l.offset < 0 {
		l.offset = 0
	}
	if m := l.maxOffset(); l.offset > m {
		l.offset = m
	}
}

func (l *lapList) visibleRows() []string {
	end := l.offset + l.visible
	if end > len(l.rows) {
		end = len(l.rows)
	}
	return l.rows[l.offset:end]
}

// timeDisplay holds what the two time sinks show.
type timeDisplay struct {
	current stopwatch.Formatted
}

func (d *timeDisplay) ShowTime(f stopwatch.Formatted) { d.current = f }
