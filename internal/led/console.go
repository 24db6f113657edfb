package led

import (
	"sync"

	"periph.io/x/devices/v3/screen1d"

	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

// Console prints the strip as a row of coloured cells on the terminal.
// Only every Every-th frame is drawn so a fast loop does not flood stdout.
type Console struct {
	mu    sync.Mutex
	dev   *screen1d.Dev
	buf   []byte
	every int
	n     int
}

func NewConsole(count, every int) *Console {
	if every < 1 {
		every = 1
	}
	return &Console{
		dev:   screen1d.New(&screen1d.Opts{X: count}),
		buf:   make([]byte, count*3),
		every: every,
	}
}

func (c *Console) Write(frame []render.Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dev == nil {
		return ErrClosed
	}
	c.n++
	if c.n%c.every != 0 {
		return nil
	}
	render.Pack(c.buf, frame)
	_, err := c.dev.Write(c.buf)
	return err
}

func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dev == nil {
		return nil
	}
	err := c.dev.Halt()
	c.dev = nil
	return err
}
