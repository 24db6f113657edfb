//go:build !(linux && ws2811)

package led

import "github.com/coreman2200/funtimes-boxhub/internal/render"

// PWM needs a linux build with the ws2811 tag, cgo and librpi_ws281x installed.
type PWM struct{}

func NewPWM(PWMConfig, int) (*PWM, error) { return nil, ErrUnsupported }

func (p *PWM) Write([]render.Color) error { return ErrUnsupported }
func (p *PWM) Close() error               { return nil }
