package input

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

const (
	EvKey uint16 = 1

	Release int32 = 0
	Press   int32 = 1
	Repeat  int32 = 2
)

// Event is one keyboard event in Linux input layout.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Active reports whether e is a key press or auto-repeat.
func (e Event) Active() bool {
	return e.Type == EvKey && (e.Value == Press || e.Value == Repeat)
}

// Source yields keyboard events without blocking.
type Source interface {
	// Poll returns the next pending event, or false when none is queued.
	Poll() (Event, bool)
	Close() error
}

var ErrShortEvent = errors.New("input: short event record")

// decodeEvent parses one input_event record whose timestamp occupies tv bytes.
func decodeEvent(b []byte, tv int) (Event, error) {
	if len(b) < tv+8 {
		return Event{}, ErrShortEvent
	}
	b = b[tv:]
	return Event{
		Type:  binary.LittleEndian.Uint16(b[0:2]),
		Code:  binary.LittleEndian.Uint16(b[2:4]),
		Value: int32(binary.LittleEndian.Uint32(b[4:8])),
	}, nil
}

// queue is the channel half shared by the event sources.
type queue struct {
	ch        chan Event
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	log       zerolog.Logger
}

func newQueue(log zerolog.Logger) *queue {
	return &queue{ch: make(chan Event, 64), done: make(chan struct{}), log: log}
}

// push drops the event if the loop has fallen behind.
func (q *queue) push(e Event) bool {
	select {
	case <-q.done:
		return false
	case q.ch <- e:
		return true
	default:
		q.log.Debug().Uint16("code", e.Code).Msg("key dropped")
		return true
	}
}

func (q *queue) Poll() (Event, bool) {
	select {
	case e := <-q.ch:
		return e, true
	default:
		return Event{}, false
	}
}

func (q *queue) stop(release func() error) error {
	var err error
	q.closeOnce.Do(func() {
		close(q.done)
		if release != nil {
			err = release()
		}
		q.wg.Wait()
	})
	return err
}

// Chan is a Source fed directly by the caller.
type Chan struct{ *queue }

func NewChan() *Chan { return &Chan{newQueue(zerolog.Nop())} }

// Send queues e for the next Poll.
func (c *Chan) Send(e Event) { c.push(e) }

// Press queues a key press for code.
func (c *Chan) Press(code uint16) { c.push(Event{Type: EvKey, Code: code, Value: Press}) }

func (c *Chan) Close() error { return c.stop(nil) }
