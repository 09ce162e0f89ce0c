package frames

import (
	"time"

	"golang.org/x/time/rate"
)

// DefaultScrollInterval is the minimum spacing between processed scroll samples.
const DefaultScrollInterval = 80 * time.Millisecond

// ScrollSample is one raw scroll reading.
type ScrollSample struct {
	Offset float64
	Extent float64
}

// ScrollDebouncer rate-limits raw scroll samples. Samples arriving faster than
// the interval are held; the newest held sample is released by Flush so the
// resting position is always processed.
type ScrollDebouncer struct {
	limiter  *rate.Limiter
	interval time.Duration
	pending  *ScrollSample
	seq      int
}

// NewScrollDebouncer allows one sample per interval.
func NewScrollDebouncer(interval time.Duration) *ScrollDebouncer {
	if interval <= 0 {
		interval = DefaultScrollInterval
	}
	return &ScrollDebouncer{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Interval returns the configured spacing.
func (d *ScrollDebouncer) Interval() time.Duration { return d.interval }

// Offer submits a sample taken at now. It returns the sample when it may be
// processed immediately. Otherwise the sample is held and the returned
// sequence number identifies the flush that should release it; schedule
// exactly one flush whenever scheduleFlush is true.
func (d *ScrollDebouncer) Offer(s ScrollSample, now time.Time) (ready ScrollSample, ok bool, seq int, scheduleFlush bool) {
	if d.pending == nil && d.limiter.AllowN(now, 1) {
		return s, true, d.seq, false
	}
	scheduleFlush = d.pending == nil
	if scheduleFlush {
		d.seq++
	}
	d.pending = &s
	return ScrollSample{}, false, d.seq, scheduleFlush
}

// Flush releases the held sample for the flush identified by seq.
func (d *ScrollDebouncer) Flush(seq int, now time.Time) (ScrollSample, bool) {
	if d.pending == nil || seq != d.seq {
		return ScrollSample{}, false
	}
	s := *d.pending
	d.pending = nil
	d.limiter.AllowN(now, 1)
	return s, true
}

// Pending reports whether a sample is held.
func (d *ScrollDebouncer) Pending() bool { return d.pending != nil }
