package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEveryFiresOncePerPeriod(t *testing.T) {
	fc := NewFake(epoch)
	s := NewScheduler(fc)

	calls := 0
	s.Every(10*time.Millisecond, func() { calls++ })

	s.Poll()
	require.Equal(t, 0, calls, "must not fire before the first period")

	fc.Advance(9 * time.Millisecond)
	s.Poll()
	require.Equal(t, 0, calls)

	fc.Advance(time.Millisecond)
	s.Poll()
	require.Equal(t, 1, calls)

	for i := 0; i < 5; i++ {
		fc.Advance(10 * time.Millisecond)
		s.Poll()
	}
	require.Equal(t, 6, calls)
}

func TestPollCoalescesMissedPeriods(t *testing.T) {
	fc := NewFake(epoch)
	s := NewScheduler(fc)

	calls := 0
	s.Every(10*time.Millisecond, func() { calls++ })

	fc.Advance(55 * time.Millisecond)
	s.Poll()
	require.Equal(t, 1, calls)

	fc.Advance(9 * time.Millisecond)
	s.Poll()
	require.Equal(t, 1, calls)

	fc.Advance(time.Millisecond)
	s.Poll()
	require.Equal(t, 2, calls)
}

func TestCancelStopsJob(t *testing.T) {
	fc := NewFake(epoch)
	s := NewScheduler(fc)

	calls := 0
	cancel := s.Every(10*time.Millisecond, func() { calls++ })
	require.Equal(t, 1, s.Pending())

	fc.Advance(10 * time.Millisecond)
	s.Poll()
	cancel()
	cancel()
	require.Equal(t, 0, s.Pending())

	fc.Advance(100 * time.Millisecond)
	s.Poll()
	require.Equal(t, 1, calls)
}

func TestCancelFromInsideAnotherJob(t *testing.T) {
	fc := NewFake(epoch)
	s := NewScheduler(fc)

	var second int
	var cancelSecond func()
	s.Every(10*time.Millisecond, func() { cancelSecond() })
	cancelSecond = s.Every(10*time.Millisecond, func() { second++ })

	fc.Advance(10 * time.Millisecond)
	s.Poll()
	require.Equal(t, 0, second)
	require.Equal(t, 1, s.Pending())
}

func TestRealClockMovesForward(t *testing.T) {
	c := Real()
	a := c.Now()
	b := c.Now()
	require.False(t, b.Before(a))
}
