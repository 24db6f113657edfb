//go:build !linux

package input

import (
	"errors"

	"github.com/rs/zerolog"
)

type Evdev struct{ *queue }

func OpenEvdev(dev string, log zerolog.Logger) (*Evdev, error) {
	return nil, errors.New("evdev keyboard not supported on this platform")
}

func (e *Evdev) Close() error { return nil }
