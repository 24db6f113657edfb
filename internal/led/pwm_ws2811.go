//go:build linux && ws2811

package led

import (
	"fmt"
	"sync"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"

	"github.com/coreman2200/funtimes-boxhub/internal/render"
)

var stripTypes = map[string]int{
	"RGB": ws2811.WS2811StripRGB,
	"GRB": ws2811.WS2811StripGRB,
	"BRG": ws2811.WS2811StripBRG,
}

// PWM drives the strip through rpi_ws281x's PWM/DMA engine.
type PWM struct {
	count int

	mu  sync.Mutex
	dev *ws2811.WS2811
}

func NewPWM(c PWMConfig, count int) (*PWM, error) {
	if count <= 0 {
		return nil, fmt.Errorf("led: invalid pixel count %d", count)
	}
	ch := ws2811.DefaultOptions.Channels[0]
	ch.GpioPin = c.GPIO
	ch.LedCount = count
	ch.Brightness = c.Brightness & 0xFF
	ch.StripeType = ws2811.WS2811StripGRB
	if st, ok := stripTypes[c.Order]; ok {
		ch.StripeType = st
	}

	opt := ws2811.DefaultOptions
	opt.DmaNum = c.DMA
	opt.Channels = []ws2811.ChannelOption{ch}

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("ws2811: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("ws2811 init: %w", err)
	}
	return &PWM{count: count, dev: dev}, nil
}

// Write copies the frame into the DMA buffer. The packed 0x00RRGGBB layout
// matches ws2811_led_t; StripeType handles the wire order.
func (p *PWM) Write(frame []render.Color) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev == nil {
		return ErrClosed
	}
	leds := p.dev.Leds(0)
	for i := range leds {
		var v render.Color
		if i < len(frame) {
			v = frame[i]
		}
		leds[i] = uint32(v)
	}
	if err := p.dev.Render(); err != nil {
		return fmt.Errorf("ws2811 render: %w", err)
	}
	return nil
}

func (p *PWM) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev != nil {
		p.dev.Fini()
		p.dev = nil
	}
	return nil
}
