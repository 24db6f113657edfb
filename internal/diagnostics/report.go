package diagnostics

import "github.com/rs/zerolog"

const DefaultReportEvery = 100

// Reporter logs the time taken by every Every ticks.
type Reporter struct {
	src   TickSource
	every int
	log   zerolog.Logger

	n    int
	last int64
}

// NewReporter starts timing from now. every < 1 disables the report.
func NewReporter(src TickSource, every int, log zerolog.Logger) *Reporter {
	return &Reporter{src: src, every: every, log: log, last: src.Micros()}
}

// Tick counts one loop pass. On every Every-th call it returns the elapsed
// microseconds since the previous report.
func (r *Reporter) Tick() (dt int64, ok bool) {
	if r.every < 1 {
		return 0, false
	}
	r.n++
	if r.n < r.every {
		return 0, false
	}
	now := r.src.Micros()
	dt = now - r.last
	r.last = now
	r.n = 0
	r.log.Info().Int64("dt_us", dt).Int("ticks", r.every).Msg("loop")
	return dt, true
}
