package render

import "github.com/coreman2200/funtimes-boxhub/internal/layout"

// Compose copies src into out strip by strip and stops after the last strip.
// Entries of out past the strips are left untouched. It returns the number
// of entries written.
func Compose(out, src []Color, topo layout.Topology) int {
	n := 0
	for _, s := range topo.Strips {
		end := n + s.Length
		if end > len(out) || end > len(src) {
			end = min(len(out), len(src))
			copy(out[n:end], src[n:end])
			return end
		}
		copy(out[n:end], src[n:end])
		n = end
	}
	return n
}

// Limiter scales a frame down to an estimated current budget. ChanMA is the
// draw of one channel at full scale.
type Limiter struct {
	ChanMA   int
	BudgetMA int
}

// Estimate returns the frame's draw in milliamps.
func (l Limiter) Estimate(buf []Color) int {
	sum := 0
	for _, c := range buf {
		sum += int(c.R()) + int(c.G()) + int(c.B())
	}
	return sum * l.ChanMA / 255
}

// Apply scales buf in place when it exceeds the budget and reports whether
// it did. A zero budget disables the limiter.
func (l Limiter) Apply(buf []Color) bool {
	if l.BudgetMA <= 0 || l.ChanMA <= 0 {
		return false
	}
	total := l.Estimate(buf)
	if total <= l.BudgetMA {
		return false
	}
	scale := l.BudgetMA * 1024 / total
	for i, c := range buf {
		buf[i] = RGB(int(c.R())*scale>>10, int(c.G())*scale>>10, int(c.B())*scale>>10)
	}
	return true
}
