package sensor

import (
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

const streamBuffer = 4096

// Stream turns a blocking reader into a non-blocking Source. A single
// goroutine reads into a buffered channel; TryRead never waits.
type Stream struct {
	rc  io.ReadCloser
	ch  chan byte
	log zerolog.Logger

	// idleEOF treats io.EOF as a read timeout rather than end of stream.
	idleEOF bool

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	closeErr  error
}

// NewStream starts reading rc.
func NewStream(rc io.ReadCloser, log zerolog.Logger) *Stream {
	return newStream(rc, log, false)
}

func newStream(rc io.ReadCloser, log zerolog.Logger, idleEOF bool) *Stream {
	s := &Stream{
		rc:      rc,
		ch:      make(chan byte, streamBuffer),
		log:     log,
		idleEOF: idleEOF,
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *Stream) run() {
	defer s.wg.Done()
	buf := make([]byte, 64)
	for {
		n, err := s.rc.Read(buf)
		for _, b := range buf[:n] {
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
		select {
		case <-s.done:
			return
		default:
		}
		if err == nil || (s.idleEOF && errors.Is(err, io.EOF)) {
			continue
		}
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
			s.log.Warn().Err(err).Msg("sensor read stopped")
		}
		return
	}
}

// TryRead implements Source.
func (s *Stream) TryRead() (byte, bool) {
	select {
	case b := <-s.ch:
		return b, true
	default:
		return 0, false
	}
}

// Close stops the reader goroutine and closes the underlying reader.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.rc.Close()
		s.wg.Wait()
	})
	return s.closeErr
}
