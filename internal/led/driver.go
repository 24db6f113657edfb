// Package led holds the output sinks a composited frame is pushed to.
package led

import (
	"errors"

	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes one frame to hardware. Entries past the driver's pixel
	// count are ignored.
	Write(frame []render.Color) error
	// Close blanks the strip and releases resources.
	Close() error
}

var (
	ErrClosed      = errors.New("led: driver closed")
	ErrUnsupported = errors.New("led: driver not supported on this platform")
)

// Kind names a driver in the config file.
type Kind string

const (
	KindSPI     Kind = "spi"
	KindPWM     Kind = "pwm"
	KindConsole Kind = "console"
	KindNull    Kind = "null"
)

// SPIConfig selects the NRZ-over-SPI sink. An empty Dev opens the first
// port the host registers.
type SPIConfig struct {
	Dev     string `yaml:"dev"`
	SpeedHz int    `yaml:"speed_hz"`
}

// PWMConfig selects the ws2811 PWM/DMA sink.
type PWMConfig struct {
	GPIO       int    `yaml:"gpio"`
	DMA        int    `yaml:"dma"`
	Brightness int    `yaml:"brightness"`
	Order      string `yaml:"order"`
}

const (
	DefaultSpeedHz    = 2500000
	DefaultGPIO       = 18
	DefaultDMA        = 5
	DefaultBrightness = 255
	DefaultOrder      = "GRB"
)
