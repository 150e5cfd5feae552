// Package clock provides the time source and the periodic job scheduler used
// by the stopwatch.
//
// Jobs never run on their own goroutine: the owner of the Scheduler calls
// Poll from its loop (the game's Update), so every job runs on the same
// goroutine as the rest of the UI.
package clock

import (
	"sort"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

// Fake is a manually advanced Clock for tests and simulations.
type Fake struct {
	now time.Time
}

// NewFake returns a Fake clock set to start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time { return f.now }

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

type job struct {
	id     int
	period time.Duration
	next   time.Time
	fn     func()
}

// Scheduler runs functions every K milliseconds when polled.
type Scheduler struct {
	clock  Clock
	jobs   map[int]*job
	nextID int
}

// NewScheduler creates a scheduler reading time from c.
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{
		clock: c,
		jobs:  make(map[int]*job),
	}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock { return s.clock }

// Every registers fn to run every period, first after one period has
// elapsed. The returned cancel func removes the job; calling it more than
// once is harmless.
func (s *Scheduler) Every(period time.Duration, fn func()) (cancel func()) {
	if period <= 0 {
		period = time.Millisecond
	}
	s.nextID++
	j := &job{
		id:     s.nextID,
		period: period,
		next:   s.clock.Now().Add(period),
		fn:     fn,
	}
	s.jobs[j.id] = j
	return func() { delete(s.jobs, j.id) }
}

// Pending reports the number of registered jobs.
func (s *Scheduler) Pending() int { return len(s.jobs) }

// Poll runs every job whose deadline has passed. A job fires at most once
// per Poll even if several periods were missed; its next deadline is then
// one period after now. Jobs cancelled by an earlier job in the same Poll
// do not run.
func (s *Scheduler) Poll() {
	if len(s.jobs) == 0 {
		return
	}
	now := s.clock.Now()

	ids := make([]int, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		j, ok := s.jobs[id]
		if !ok || now.Before(j.next) {
			continue
		}
		j.next = j.next.Add(j.period)
		if !j.next.After(now) {
			j.next = now.Add(j.period)
		}
		j.fn()
	}
}
