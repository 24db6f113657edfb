// Package wave holds the fixed-point oscillator primitives shared by the
// animated scenes: a 2048-step cosine table and phase accumulators.
package wave

import "math"

const (
	// Steps is the number of table entries in one full cycle.
	Steps = 2048
	// Max is the table peak, reached at phase 0.
	Max = Steps - 1

	mask = Steps - 1
)

var table [Steps]uint16

func init() {
	half := Steps / 2
	for i := 0; i <= half; i++ {
		v := (float64(Max) / 2) * (1 + math.Cos(2*math.Pi*float64(i)/Steps))
		table[i] = uint16(math.Floor(v + 0.5))
	}
	for i := half + 1; i < Steps; i++ {
		table[i] = table[Steps-i]
	}
}

// Cos returns the cosine of phase in table units, offset so the result is in
// 0..Max. Phases wrap modulo Steps, negative phases included.
func Cos(phase int) int {
	return int(table[phase&mask])
}

// Phase is a free-running accumulator advanced by Speed each tick.
type Phase struct {
	Acc   int64
	Speed int
}

// Advance adds Speed*timeScale to the accumulator.
func (p *Phase) Advance(timeScale int) {
	p.Acc += int64(p.Speed) * int64(timeScale)
}

// Coarse is the accumulator reduced to table resolution.
func (p *Phase) Coarse() int { return int(p.Acc >> 10) }

// Oscillators is the three-phase set driving the wave scenes.
type Oscillators [3]Phase

// NewOscillators returns a bank at phase zero with the given speeds.
func NewOscillators(s1, s2, s3 int) Oscillators {
	return Oscillators{{Speed: s1}, {Speed: s2}, {Speed: s3}}
}

// Advance steps every phase by its speed times timeScale.
func (o *Oscillators) Advance(timeScale int) {
	for i := range o {
		o[i].Advance(timeScale)
	}
}
