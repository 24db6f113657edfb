// Package zone smooths raw per-zone motion into slowly varying levels.
package zone

// Filter is a setpoint driven by motion and a level that chases it with a
// 1/16 exponential response.
type Filter struct {
	Setpoint int
	Level    int
}

// Rise lifts the setpoint to at least v.
func (f *Filter) Rise(v int) {
	if v > f.Setpoint {
		f.Setpoint = v
	}
}

// Fall lowers the setpoint to at most v.
func (f *Filter) Fall(v int) {
	if v < f.Setpoint {
		f.Setpoint = v
	}
}

// Decay pulls the setpoint down by step while it stays above floor+step,
// otherwise pins it to floor.
func (f *Filter) Decay(step, floor int) {
	if f.Setpoint > floor+step {
		f.Setpoint -= step
	} else {
		f.Setpoint = floor
	}
}

// Recover pushes the setpoint up by step while it stays below ceil-step,
// otherwise pins it to ceil.
func (f *Filter) Recover(step, ceil int) {
	if f.Setpoint < ceil-step {
		f.Setpoint += step
	} else {
		f.Setpoint = ceil
	}
}

// Smooth moves Level 1/16 of the way toward Setpoint.
func (f *Filter) Smooth() {
	f.Level = (f.Setpoint + f.Level*15) >> 4
}

const (
	HeatGain  = 8
	HeatDecay = 2
)

// Tracker holds the heat filter of every zone.
type Tracker struct {
	zones []Filter
}

func NewTracker(zones int) *Tracker {
	return &Tracker{zones: make([]Filter, zones)}
}

// Update folds one tick of raw intensities in. raw(i) returns zone i.
func (t *Tracker) Update(raw func(i int) byte) {
	for i := range t.zones {
		z := &t.zones[i]
		z.Rise(int(raw(i)) * HeatGain)
		z.Decay(HeatDecay, 0)
		z.Smooth()
	}
}

// Level returns the smoothed heat of zone i.
func (t *Tracker) Level(i int) int {
	if i < 0 || i >= len(t.zones) {
		return 0
	}
	return t.zones[i].Level
}

// Setpoint returns the heat setpoint of zone i.
func (t *Tracker) Setpoint(i int) int {
	if i < 0 || i >= len(t.zones) {
		return 0
	}
	return t.zones[i].Setpoint
}

func (t *Tracker) Len() int { return len(t.zones) }
