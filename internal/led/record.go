package led

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

// Record keeps the last frame in memory and logs a compact summary, useful
// headless and in tests. Fail, when set, is returned from every Write.
type Record struct {
	Log  zerolog.Logger
	Fail error

	mu     sync.Mutex
	frames int
	closes int
	last   []render.Color
}

func (d *Record) Write(buf []render.Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closes > 0 {
		return ErrClosed
	}
	if d.Fail != nil {
		return d.Fail
	}
	d.frames++
	d.last = append(d.last[:0], buf...)

	if e := d.Log.Trace(); e.Enabled() {
		var r, g, b int
		for _, c := range buf {
			r += int(c.R())
			g += int(c.G())
			b += int(c.B())
		}
		n := len(buf)
		if n == 0 {
			n = 1
		}
		e.Int("frame", d.frames).
			Ints("avg", []int{r / n, g / n, b / n}).
			Msg("frame")
	}
	return nil
}

func (d *Record) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

// Frames is the number of successful writes.
func (d *Record) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Closes is the number of Close calls.
func (d *Record) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

// Last returns a copy of the most recent frame.
func (d *Record) Last() []render.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]render.Color(nil), d.last...)
}
