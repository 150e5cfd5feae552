package stopwatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/stopwatch/internal/clock"
)

type displayStub struct {
	shown []Formatted
}

func (d *displayStub) ShowTime(f Formatted) { d.shown = append(d.shown, f) }

func (d *displayStub) last() Formatted { return d.shown[len(d.shown)-1] }

type lapSinkStub struct {
	entries []LapEntry
	clears  int
}

func (l *lapSinkStub) AppendLap(e LapEntry) { l.entries = append(l.entries, e) }
func (l *lapSinkStub) ClearLaps() {
	l.entries = nil
	l.clears++
}

type fileSinkStub struct {
	name, mime string
	data       []byte
	calls      int
	err        error
}

func (f *fileSinkStub) Download(name, mime string, data []byte) error {
	f.calls++
	f.name, f.mime, f.data = name, mime, data
	return f.err
}

type notifierStub struct {
	messages []string
}

func (n *notifierStub) Notify(msg string) { n.messages = append(n.messages, msg) }

type harness struct {
	clock    *clock.Fake
	sched    *clock.Scheduler
	ctrl     *Controller
	display  *displayStub
	laps     *lapSinkStub
	files    *fileSinkStub
	notifier *notifierStub
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		clock:    clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
		display:  &displayStub{},
		laps:     &lapSinkStub{},
		files:    &fileSinkStub{},
		notifier: &notifierStub{},
	}
	h.sched = clock.NewScheduler(h.clock)
	h.ctrl = New(h.clock, h.sched, Sinks{
		Display:  h.display,
		Laps:     h.laps,
		Files:    h.files,
		Notifier: h.notifier,
	}, opts...)
	return h
}

// run advances the fake clock in tick-sized steps, polling the scheduler
// after each one the way the game loop does.
func (h *harness) run(d time.Duration) {
	for d > 0 {
		step := TickInterval
		if d < step {
			step = d
		}
		h.clock.Advance(step)
		h.sched.Poll()
		d -= step
	}
}

func TestNewShowsZero(t *testing.T) {
	h := newHarness(t)
	require.Len(t, h.display.shown, 1)
	require.Equal(t, Formatted{Time: "00:00:00", Fraction: ".000"}, h.display.last())
	require.False(t, h.ctrl.Running())
}

func TestStartTicksAndUpdatesDisplay(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Start()
	require.True(t, h.ctrl.Running())
	require.Equal(t, 1, h.sched.Pending())

	h.run(1250 * time.Millisecond)
	require.Equal(t, 1250*time.Millisecond, h.ctrl.Elapsed())
	require.Equal(t, Formatted{Time: "00:00:01", Fraction: ".250"}, h.display.last())
}

func TestStartWhileRunningPauses(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Start()
	h.run(100 * time.Millisecond)
	h.ctrl.Start()

	require.False(t, h.ctrl.Running())
	require.Equal(t, 0, h.sched.Pending())
	require.Equal(t, 100*time.Millisecond, h.ctrl.Elapsed())
}

func TestPauseFreezesAndResumePreservesElapsed(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Start()
	h.run(300 * time.Millisecond)
	h.ctrl.Pause()
	frozen := h.display.last()
	shown := len(h.display.shown)

	h.run(5 * time.Second)
	require.Equal(t, 300*time.Millisecond, h.ctrl.Elapsed())
	require.Len(t, h.display.shown, shown)
	require.Equal(t, frozen, h.display.last())

	h.ctrl.Start()
	h.run(200 * time.Millisecond)
	require.Equal(t, 500*time.Millisecond, h.ctrl.Elapsed())
}

func TestStartThenPauseIsIdempotent(t *testing.T) {
	h := newHarness(t)

	h.ctrl.Start()
	h.ctrl.Pause()
	first := h.ctrl.State()
	require.GreaterOrEqual(t, first.Elapsed, time.Duration(0))

	h.ctrl.Pause()
	require.Equal(t, first, h.ctrl.State())
	require.Equal(t, 0, h.sched.Pending())
}

func TestPauseWhenStoppedIsNoop(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Pause()
	require.Equal(t, TimerState{}, h.ctrl.State())
}

func TestResetFromAnyState(t *testing.T) {
	cases := map[string]func(h *harness){
		"fresh": func(h *harness) {},
		"running with laps": func(h *harness) {
			h.ctrl.Start()
			h.run(time.Second)
			h.ctrl.RecordLap()
		},
		"paused with laps": func(h *harness) {
			h.ctrl.Start()
			h.run(time.Second)
			h.ctrl.RecordLap()
			h.ctrl.Pause()
		},
	}

	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			prepare(h)

			h.ctrl.Reset()
			require.Equal(t, time.Duration(0), h.ctrl.Elapsed())
			require.False(t, h.ctrl.Running())
			require.Empty(t, h.ctrl.Laps())
			require.Empty(t, h.laps.entries)
			require.Equal(t, 0, h.sched.Pending())
			require.Equal(t, Formatted{Time: "00:00:00", Fraction: ".000"}, h.display.last())

			h.ctrl.Reset()
			require.Equal(t, time.Duration(0), h.ctrl.Elapsed())
			require.Empty(t, h.ctrl.Laps())
		})
	}
}

func TestResetDoesNotLeakTicks(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	h.run(50 * time.Millisecond)
	h.ctrl.Reset()

	h.run(time.Second)
	require.Equal(t, time.Duration(0), h.ctrl.Elapsed())
}

func TestRecordLapWhileStoppedIsNoop(t *testing.T) {
	h := newHarness(t)
	h.ctrl.RecordLap()
	require.Empty(t, h.ctrl.Laps())

	h.ctrl.Start()
	h.run(time.Second)
	h.ctrl.RecordLap()
	h.ctrl.Pause()
	h.ctrl.RecordLap()
	require.Len(t, h.ctrl.Laps(), 1)
	require.Len(t, h.laps.entries, 1)
}

func TestRecordLapSequence(t *testing.T) {
	var hooked []int
	h := newHarness(t, WithLapHook(func(e LapEntry) { hooked = append(hooked, e.Sequence) }))

	h.ctrl.Start()
	const n = 7
	for i := 0; i < n; i++ {
		h.run(1010 * time.Millisecond)
		h.ctrl.RecordLap()
	}

	laps := h.ctrl.Laps()
	require.Len(t, laps, n)
	for i, lap := range laps {
		require.Equal(t, i+1, lap.Sequence)
	}
	require.Equal(t, laps, h.laps.entries)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, hooked)

	require.Equal(t, "00:00:01", laps[0].Time)
	require.Equal(t, ".010", laps[0].Fraction)
	require.Equal(t, "Lap 7: 00:00:07.070", laps[6].String())
}

func TestLapsReturnsCopy(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	h.run(10 * time.Millisecond)
	h.ctrl.RecordLap()

	laps := h.ctrl.Laps()
	laps[0].Time = "99:99:99"
	require.Equal(t, "00:00:00", h.ctrl.Laps()[0].Time)
}

func TestStartHook(t *testing.T) {
	starts := 0
	h := newHarness(t, WithStartHook(func() { starts++ }))

	h.ctrl.Start()
	h.ctrl.Start()
	h.ctrl.Start()
	require.Equal(t, 2, starts)
}

func TestExportEmptyNotifies(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.ExportLaps())
	require.Equal(t, []string{"No laps to export!"}, h.notifier.messages)
	require.Equal(t, 0, h.files.calls)
}

func TestExportSingleLap(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Start()
	h.run(5250 * time.Millisecond)
	h.ctrl.RecordLap()

	require.NoError(t, h.ctrl.ExportLaps())
	require.Empty(t, h.notifier.messages)
	require.Equal(t, 1, h.files.calls)
	require.Equal(t, "stopwatch_laps.csv", h.files.name)
	require.Equal(t, "text/csv", h.files.mime)
	require.Equal(t, "Lap,Time,Milliseconds\n1,00:00:05,250\n", string(h.files.data))
}

func TestExportPropagatesSinkError(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("disk full")
	h.files.err = boom

	h.ctrl.Start()
	h.run(10 * time.Millisecond)
	h.ctrl.RecordLap()

	err := h.ctrl.ExportLaps()
	require.ErrorIs(t, err, boom)
}

func TestNilSinksAreIgnored(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0))
	sched := clock.NewScheduler(fc)
	ctrl := New(fc, sched, Sinks{})

	ctrl.Start()
	fc.Advance(TickInterval)
	sched.Poll()
	ctrl.RecordLap()
	require.NoError(t, ctrl.ExportLaps())
	ctrl.Reset()
	require.NoError(t, ctrl.ExportLaps())
}
