package input

import (
	"errors"
	"os"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("input: stdin is not a terminal")

var runeCodes = map[rune]uint16{
	'0': Key0,
	'-': KeyMinus,
	'=': KeyEqual,
	'q': KeyQ,
	'w': KeyW,
	'e': KeyE,
	'p': KeyP,
	'a': KeyA,
	's': KeyS,
	'd': KeyD,
}

var keyCodes = map[keyboard.Key]uint16{
	keyboard.KeyArrowUp:    KeyUp,
	keyboard.KeyArrowDown:  KeyDown,
	keyboard.KeyArrowLeft:  KeyLeft,
	keyboard.KeyArrowRight: KeyRight,
}

// scanCode translates a terminal key into the Linux code the keymap uses.
func scanCode(ch rune, key keyboard.Key) (uint16, bool) {
	if ch != 0 {
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		c, ok := runeCodes[ch]
		return c, ok
	}
	c, ok := keyCodes[key]
	return c, ok
}

// Terminal reads keys from the controlling terminal in raw mode. Esc and
// Ctrl-C call onQuit since raw mode swallows SIGINT.
type Terminal struct {
	*queue
}

func OpenTerminal(log zerolog.Logger, onQuit func()) (*Terminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}
	keys, err := keyboard.GetKeys(16)
	if err != nil {
		return nil, err
	}
	t := &Terminal{queue: newQueue(log)}
	t.wg.Add(1)
	go t.run(keys, onQuit)
	return t, nil
}

func (t *Terminal) run(keys <-chan keyboard.KeyEvent, onQuit func()) {
	defer t.wg.Done()
	for {
		var ev keyboard.KeyEvent
		select {
		case <-t.done:
			return
		case k, ok := <-keys:
			if !ok {
				return
			}
			ev = k
		}
		if ev.Err != nil {
			t.log.Warn().Err(ev.Err).Msg("terminal read stopped")
			return
		}
		if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
			if onQuit != nil {
				onQuit()
			}
			continue
		}
		code, ok := scanCode(ev.Rune, ev.Key)
		if !ok {
			continue
		}
		if !t.push(Event{Type: EvKey, Code: code, Value: Press}) {
			return
		}
	}
}

func (t *Terminal) Close() error { return t.stop(keyboard.Close) }
