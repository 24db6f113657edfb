package sensor

// Source yields bytes without blocking.
type Source interface {
	// TryRead returns the next buffered byte, or false when none is pending.
	TryRead() (byte, bool)
	Close() error
}

// Decoder assembles frames from the escaped byte stream.
type Decoder struct {
	frame   Frame
	cursor  int
	dropped int
}

// Feed consumes one wire byte. Bytes past the frame capacity are dropped.
func (d *Decoder) Feed(b byte) {
	if b == Marker {
		d.cursor = 0
		return
	}
	if d.cursor >= FrameSize {
		d.dropped++
		return
	}
	if b == Escape {
		b = 0
	}
	d.frame[d.cursor] = b
	d.cursor++
}

// Drain feeds every byte src has pending and returns how many were read.
func (d *Decoder) Drain(src Source) int {
	if src == nil {
		return 0
	}
	n := 0
	for {
		b, ok := src.TryRead()
		if !ok {
			return n
		}
		d.Feed(b)
		n++
	}
}

// Frame returns the live frame. It is updated in place by Feed.
func (d *Decoder) Frame() *Frame { return &d.frame }

// Dropped counts overflow bytes discarded since start.
func (d *Decoder) Dropped() int { return d.dropped }
