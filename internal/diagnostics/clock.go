// Package diagnostics keeps the loop's tick source and timing report.
package diagnostics

import "time"

// TickSource reports monotonic time in microseconds.
type TickSource interface {
	Micros() int64
}

// Clock is the wall tick source, counting from its creation.
type Clock struct {
	start time.Time
}

func NewClock() *Clock { return &Clock{start: time.Now()} }

func (c *Clock) Micros() int64 { return time.Since(c.start).Microseconds() }

// Seed derives a random seed from the clock.
func (c *Clock) Seed() int64 { return c.start.UnixMicro() + c.Micros() }
