// Package stopwatch owns the timing state, the lap log and its CSV export.
//
// The controller never touches presentation. It reports through four small
// sinks implemented by the UI shell, and it is driven by an injected clock
// and scheduler so tests can simulate time without sleeping.
package stopwatch

import (
	"fmt"
	"log"
	"time"

	"github.com/iburimskiy/stopwatch/internal/clock"
)

// TickInterval is the cadence at which a running stopwatch refreshes.
const TickInterval = 10 * time.Millisecond

// TimerState is the controller's timing state.
type TimerState struct {
	// StartReference is the instant the current run began, shifted back by
	// the elapsed time carried over from earlier runs. Zero while stopped.
	StartReference time.Time
	Elapsed        time.Duration
	Running        bool
}

// LapEntry is one recorded lap. Entries are never modified after creation.
type LapEntry struct {
	Sequence int
	Time     string
	Fraction string
}

// Formatted returns the lap's captured time.
func (l LapEntry) Formatted() Formatted {
	return Formatted{Time: l.Time, Fraction: l.Fraction}
}

func (l LapEntry) String() string {
	return fmt.Sprintf("Lap %d: %s%s", l.Sequence, l.Time, l.Fraction)
}

// Display receives the formatted elapsed time.
type Display interface {
	ShowTime(Formatted)
}

// LapSink is the ordered, appendable lap list.
type LapSink interface {
	AppendLap(LapEntry)
	ClearLaps()
}

// FileSink delivers an exported file to the user.
type FileSink interface {
	Download(name, mimeType string, data []byte) error
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// Scheduler runs fn every period until the returned cancel func is called.
type Scheduler interface {
	Every(period time.Duration, fn func()) (cancel func())
}

// Sinks bundles the UI shell's outputs. Nil fields are ignored.
type Sinks struct {
	Display  Display
	Laps     LapSink
	Files    FileSink
	Notifier Notifier
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLapHook registers fn to run after every recorded lap.
func WithLapHook(fn func(LapEntry)) Option {
	return func(c *Controller) {
		c.onLap = fn
	}
}

// WithStartHook registers fn to run whenever the stopwatch starts running.
func WithStartHook(fn func()) Option {
	return func(c *Controller) {
		c.onStart = fn
	}
}

// Controller implements start/pause/reset/lap/export.
type Controller struct {
	clock     clock.Clock
	scheduler Scheduler
	sinks     Sinks
	logger    *log.Logger
	onLap     func(LapEntry)
	onStart   func()

	state  TimerState
	cancel func()
	laps   []LapEntry
}

// New builds a stopped controller at zero and pushes the initial time to
// the display.
func New(c clock.Clock, s Scheduler, sinks Sinks, opts ...Option) *Controller {
	ctrl := &Controller{
		clock:     c,
		scheduler: s,
		sinks:     sinks,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	ctrl.refresh()
	return ctrl
}

// Start begins or resumes timing. Calling Start while running pauses, so
// the start control works as a toggle.
func (c *Controller) Start() {
	if c.state.Running {
		c.Pause()
		return
	}

	c.state.StartReference = c.clock.Now().Add(-c.state.Elapsed)
	c.cancel = c.scheduler.Every(TickInterval, c.tick)
	c.state.Running = true

	if c.onStart != nil {
		c.onStart()
	}
}

func (c *Controller) tick() {
	c.state.Elapsed = c.clock.Now().Sub(c.state.StartReference).Truncate(time.Millisecond)
	c.refresh()
}

// Pause stops the periodic update. The displayed time keeps its last value.
func (c *Controller) Pause() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Running = false
	c.state.StartReference = time.Time{}
}

// Reset pauses, zeroes the elapsed time and clears the lap log.
func (c *Controller) Reset() {
	c.Pause()
	c.state.Elapsed = 0
	c.laps = nil
	if c.sinks.Laps != nil {
		c.sinks.Laps.ClearLaps()
	}
	c.refresh()
}

// RecordLap appends the current elapsed time to the lap log. It does
// nothing while stopped.
func (c *Controller) RecordLap() {
	if !c.state.Running {
		return
	}

	f := FormatDuration(c.state.Elapsed)
	entry := LapEntry{
		Sequence: len(c.laps) + 1,
		Time:     f.Time,
		Fraction: f.Fraction,
	}
	c.laps = append(c.laps, entry)

	if c.sinks.Laps != nil {
		c.sinks.Laps.AppendLap(entry)
	}
	if c.onLap != nil {
		c.onLap(entry)
	}
}

// ExportLaps hands the lap log to the file sink as CSV. With an empty log
// the user is notified and nothing is written. The only error returned is
// one from building or delivering the file.
func (c *Controller) ExportLaps() error {
	if len(c.laps) == 0 {
		if c.sinks.Notifier != nil {
			c.sinks.Notifier.Notify(NoLapsMessage)
		}
		return nil
	}

	data, err := LapsCSV(c.laps)
	if err != nil {
		return fmt.Errorf("export laps: %w", err)
	}
	if c.sinks.Files == nil {
		return nil
	}
	if err := c.sinks.Files.Download(ExportFileName, ExportMIMEType, data); err != nil {
		return fmt.Errorf("export laps: %w", err)
	}
	c.logger.Printf("exported %d laps", len(c.laps))
	return nil
}

// State returns a copy of the timing state.
func (c *Controller) State() TimerState { return c.state }

// Running reports whether the stopwatch is timing.
func (c *Controller) Running() bool { return c.state.Running }

// Elapsed returns the accumulated run time.
func (c *Controller) Elapsed() time.Duration { return c.state.Elapsed }

// Laps returns a copy of the lap log in recording order.
func (c *Controller) Laps() []LapEntry {
	out := make([]LapEntry, len(c.laps))
	copy(out, c.laps)
	return out
}

func (c *Controller) refresh() {
	if c.sinks.Display != nil {
		c.sinks.Display.ShowTime(FormatDuration(c.state.Elapsed))
	}
}
