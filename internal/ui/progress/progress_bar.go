// Package progress implements the bookkeeping and drawing of progress
// bars. Nothing here writes to a terminal: a [Tracker] counts steps and
// derives rates, [Cells] and [Line] turn a fraction into glyphs, and the
// table decides where those glyphs go.
package progress

import (
	"time"
)

const (
	sampleSlots    = 10
	sampleInterval = 100 * time.Millisecond
)

type sample struct {
	at    time.Time
	count int64
}

// Tracker counts progress steps. A negative total means the total is
// unknown. All methods are no-ops after Close except the getters.
type Tracker struct {
	count  int64
	total  int64
	start  time.Time
	now    func() time.Time
	closed bool

	// ring of recent samples, at least sampleInterval apart
	samples [sampleSlots]sample
	next    int
	filled  int
}

// NewTracker starts a tracker. now may be nil, in which case time.Now
// is used.
func NewTracker(total int64, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	t := &Tracker{total: total, now: now}
	t.restart()
	return t
}

func (t *Tracker) restart() {
	t.count = 0
	t.start = t.now()
	t.next, t.filled = 0, 0
	t.record(t.start)
}

func (t *Tracker) record(at time.Time) {
	if t.filled > 0 {
		last := t.samples[(t.next+sampleSlots-1)%sampleSlots]
		if at.Sub(last.at) < sampleInterval {
			return
		}
	}
	t.samples[t.next] = sample{at: at, count: t.count}
	t.next = (t.next + 1) % sampleSlots
	t.filled = min(t.filled+1, sampleSlots)
}

// Advance adds n steps.
func (t *Tracker) Advance(n int64) {
	if t.closed {
		return
	}
	t.count += n
	t.record(t.now())
}

// Set moves the counter to an absolute position.
func (t *Tracker) Set(count int64) {
	if t.closed {
		return
	}
	t.count = count
	t.record(t.now())
}

// Reset zeroes the counter, restarts the clock and installs a new
// total (negative for unknown).
func (t *Tracker) Reset(total int64) {
	if t.closed {
		return
	}
	t.total = total
	t.restart()
}

// SetTotal changes the total without touching the counter.
func (t *Tracker) SetTotal(total int64) {
	if t.closed {
		return
	}
	t.total = total
}

// Close marks the tracker finished. It reports whether this call
// performed the transition.
func (t *Tracker) Close() bool {
	if t.closed {
		return false
	}
	t.closed = true
	return true
}

// Closed reports whether Close was called.
func (t *Tracker) Closed() bool { return t.closed }

// Count returns the number of steps so far.
func (t *Tracker) Count() int64 { return t.count }

// Total returns the total and whether it is known.
func (t *Tracker) Total() (int64, bool) { return t.total, t.total >= 0 }

// Elapsed returns the time since start or the last Reset.
func (t *Tracker) Elapsed() time.Duration { return t.now().Sub(t.start) }

// Percent returns count/total clamped to [0, 1]. The second result is
// false when the total is unknown. A zero total counts as complete.
func (t *Tracker) Percent() (float64, bool) {
	if t.total < 0 {
		return 0, false
	}
	if t.total == 0 {
		return 1, true
	}
	p := float64(t.count) / float64(t.total)
	return max(0, min(1, p)), true
}

// Throughput returns steps per second over the recent sample window.
func (t *Tracker) Throughput() float64 {
	if t.filled == 0 {
		return 0
	}
	oldest := t.samples[0]
	if t.filled == sampleSlots {
		oldest = t.samples[t.next]
	}
	dt := t.now().Sub(oldest.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return float64(t.count-oldest.count) / dt
}

// ETA estimates the remaining time. The second result is false when the
// total is unknown or nothing has happened yet.
func (t *Tracker) ETA() (time.Duration, bool) {
	if t.total < 0 {
		return 0, false
	}
	rate := t.Throughput()
	if rate <= 0 {
		return 0, false
	}
	remaining := max(0, t.total-t.count)
	return time.Duration(float64(remaining) / rate * float64(time.Second)), true
}
