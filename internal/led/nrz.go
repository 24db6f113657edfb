package led

import (
	"fmt"
	"io"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

// NRZ drives WS281x strips by shaping the bit stream over an SPI port.
type NRZ struct {
	mu   sync.Mutex
	dev  *nrzled.Dev
	port io.Closer
	buf  []byte
}

// NewNRZ wraps an already open port. count is the number of pixels clocked
// out every frame.
func NewNRZ(p spi.Port, count int, speedHz int) (*NRZ, error) {
	if count <= 0 {
		return nil, fmt.Errorf("led: invalid pixel count %d", count)
	}
	if speedHz <= 0 {
		speedHz = DefaultSpeedHz
	}
	o := nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      physic.Frequency(speedHz) * physic.Hertz,
	}
	d, err := nrzled.NewSPI(p, &o)
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	if err := d.Halt(); err != nil {
		return nil, fmt.Errorf("nrzled halt: %w", err)
	}
	n := &NRZ{dev: d, buf: make([]byte, count*3)}
	if c, ok := p.(io.Closer); ok {
		n.port = c
	}
	return n, nil
}

// OpenNRZ initialises the host drivers and opens the configured SPI port.
func OpenNRZ(c SPIConfig, count int) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	p, err := spireg.Open(c.Dev)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", c.Dev, err)
	}
	n, err := NewNRZ(p, count, c.SpeedHz)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return n, nil
}

func (n *NRZ) String() string { return n.dev.String() }

func (n *NRZ) Write(frame []render.Color) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dev == nil {
		return ErrClosed
	}
	k := render.Pack(n.buf, frame)
	for i := k; i < len(n.buf); i++ {
		n.buf[i] = 0
	}
	if _, err := n.dev.Write(n.buf); err != nil {
		return fmt.Errorf("nrzled write: %w", err)
	}
	return nil
}

func (n *NRZ) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dev == nil {
		return nil
	}
	err := n.dev.Halt()
	n.dev = nil
	if n.port != nil {
		if cerr := n.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
