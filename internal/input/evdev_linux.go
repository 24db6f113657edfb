//go:build linux

package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

var timevalSize = int(unsafe.Sizeof(unix.Timeval{}))

// Evdev reads key events from a /dev/input/event* node.
type Evdev struct {
	*queue
	f *os.File
}

// OpenEvdev opens dev and starts its reader goroutine.
func OpenEvdev(dev string, log zerolog.Logger) (*Evdev, error) {
	f, err := os.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("open keyboard %s: %w", dev, err)
	}
	e := &Evdev{queue: newQueue(log), f: f}
	e.wg.Add(1)
	go e.run()
	log.Info().Str("dev", dev).Msg("keyboard open")
	return e, nil
}

func (e *Evdev) run() {
	defer e.wg.Done()
	rec := make([]byte, timevalSize+8)
	for {
		if _, err := io.ReadFull(e.f, rec); err != nil {
			if !errors.Is(err, os.ErrClosed) {
				e.log.Warn().Err(err).Msg("keyboard read stopped")
			}
			return
		}
		ev, err := decodeEvent(rec, timevalSize)
		if err != nil {
			continue
		}
		if ev.Type != EvKey {
			continue
		}
		if !e.push(ev) {
			return
		}
	}
}

func (e *Evdev) Close() error { return e.stop(e.f.Close) }
