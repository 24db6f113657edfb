package layout

import (
	"errors"
	"fmt"
)

// Strip is one physical LED strip. X/Y place it on the installation floor plan.
type Strip struct {
	Length int `yaml:"length"`
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
}

// Position describes a single LED within the topology.
type Position struct {
	Index  int // linear buffer index
	Strip  int // strip (and zone) number
	Offset int // 0-based distance from the strip start
	Depth  int // Length - Offset, 1..Length
	X, Y   int
}

// Topology is the ordered strip table plus the buffer capacity it is drawn into.
type Topology struct {
	Strips   []Strip `yaml:"strips"`
	Capacity int     `yaml:"capacity"`
}

var (
	ErrNoStrips       = errors.New("layout: no strips")
	ErrCapacity       = errors.New("layout: strips exceed buffer capacity")
	ErrNonPositiveLen = errors.New("layout: strip length must be positive")
)

// Validate checks the sizing invariants.
func (t Topology) Validate() error {
	if len(t.Strips) == 0 {
		return ErrNoStrips
	}
	for i, s := range t.Strips {
		if s.Length <= 0 {
			return fmt.Errorf("strip %d: %w", i, ErrNonPositiveLen)
		}
	}
	if n := t.Count(); n > t.Capacity {
		return fmt.Errorf("%d > %d: %w", n, t.Capacity, ErrCapacity)
	}
	return nil
}

// Count returns the number of LEDs covered by the strips.
func (t Topology) Count() int {
	n := 0
	for _, s := range t.Strips {
		n += s.Length
	}
	return n
}

// Zones is the number of motion zones, one per strip.
func (t Topology) Zones() int { return len(t.Strips) }

// Walk calls fn for every LED in strip declaration order and stops once the
// last strip is consumed, or when fn returns false.
func (t Topology) Walk(fn func(Position) bool) {
	idx := 0
	for si, s := range t.Strips {
		for off := 0; off < s.Length; off++ {
			p := Position{
				Index:  idx,
				Strip:  si,
				Offset: off,
				Depth:  s.Length - off,
				X:      s.X,
				Y:      s.Y,
			}
			if !fn(p) {
				return
			}
			idx++
		}
	}
}

// At resolves a linear index; ok is false past the last strip.
func (t Topology) At(i int) (p Position, ok bool) {
	if i < 0 {
		return Position{}, false
	}
	base := 0
	for si, s := range t.Strips {
		if i < base+s.Length {
			off := i - base
			return Position{Index: i, Strip: si, Offset: off, Depth: s.Length - off, X: s.X, Y: s.Y}, true
		}
		base += s.Length
	}
	return Position{}, false
}

// Start returns the first buffer index of strip si.
func (t Topology) Start(si int) int {
	n := 0
	for i := 0; i < si && i < len(t.Strips); i++ {
		n += t.Strips[i].Length
	}
	return n
}

// Installation is the strip table of the first box install.
func Installation() Topology {
	lengths := []int{24, 28, 30, 29, 29, 34, 30, 38, 23, 21, 31, 33, 35, 29, 30, 33, 30, 26, 24, 36, 38, 31, 27}
	xs := []int{60, 72, 92, 80, 80, 85, 79, 66, 39, 28, 26, 12, 8, 25, 10, 12, 26, 11, 7, 25, 13, 28, 44}
	ys := []int{24, 25, 8, 32, 49, 66, 74, 76, 85, 78, 90, 88, 77, 65, 59, 46, 41, 35, 25, 23, 12, 5, 23}

	t := Topology{Capacity: 700, Strips: make([]Strip, len(lengths))}
	for i := range lengths {
		t.Strips[i] = Strip{Length: lengths[i], X: xs[i], Y: ys[i]}
	}
	return t
}
