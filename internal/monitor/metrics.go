// Package monitor keeps per-session request metrics: how many analyses ran,
// how they ended and how long they took.
package monitor

import (
	"math"
	"sync/atomic"
	"time"
)

// Counter is a thread-safe monotonically increasing count
type Counter struct {
	name  string
	value atomic.Int64
}

// NewCounter creates a named counter
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	c.value.Add(1)
}

// Get returns the current value
func (c *Counter) Get() int64 {
	return c.value.Load()
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

// Timer accumulates request durations
type Timer struct {
	name  string
	count atomic.Int64
	total atomic.Int64
	min   atomic.Int64
	max   atomic.Int64
	last  atomic.Int64
}

// NewTimer creates a named timer
func NewTimer(name string) *Timer {
	t := &Timer{name: name}
	t.min.Store(math.MaxInt64)
	return t
}

// Record adds one measurement
func (t *Timer) Record(d time.Duration) {
	nanos := d.Nanoseconds()
	t.count.Add(1)
	t.total.Add(nanos)
	t.last.Store(nanos)

	for cur := t.min.Load(); nanos < cur; cur = t.min.Load() {
		if t.min.CompareAndSwap(cur, nanos) {
			break
		}
	}
	for cur := t.max.Load(); nanos > cur; cur = t.max.Load() {
		if t.max.CompareAndSwap(cur, nanos) {
			break
		}
	}
}

// Count returns the number of measurements
func (t *Timer) Count() int64 {
	return t.count.Load()
}

// Min returns the shortest measurement, or 0 when nothing was recorded
func (t *Timer) Min() time.Duration {
	m := t.min.Load()
	if m == math.MaxInt64 {
		return 0
	}
	return time.Duration(m)
}

// Max returns the longest measurement
func (t *Timer) Max() time.Duration {
	return time.Duration(t.max.Load())
}

// Last returns the most recent measurement
func (t *Timer) Last() time.Duration {
	return time.Duration(t.last.Load())
}

// Avg returns the mean measurement
func (t *Timer) Avg() time.Duration {
	n := t.count.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(t.total.Load() / n)
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}
