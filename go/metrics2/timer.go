package metrics2

import (
	"time"
)

const MEASUREMENT_TIMER = "timer_ns"

// timer implements Timer. Unlike the other metrics helpers it does not
// continuously report data; instead, it reports a single observation, in
// nanoseconds, when Stop() is called.
type timer struct {
	begin   time.Time
	summary Float64SummaryMetric
}

func newTimer(c Client, name string, tagsList ...map[string]string) *timer {
	tags := map[string]string{}
	for _, t := range tagsList {
		for k, v := range t {
			tags[k] = v
		}
	}
	tags["name"] = name
	return &timer{
		begin:   time.Now(),
		summary: c.GetFloat64SummaryMetric(MEASUREMENT_TIMER, tags),
	}
}

// Start restarts the timer.
func (t *timer) Start() {
	t.begin = time.Now()
}

// Stop reports the time elapsed since the timer was created or last started.
func (t *timer) Stop() time.Duration {
	d := time.Since(t.begin)
	t.summary.Observe(float64(d))
	return d
}

var _ Timer = (*timer)(nil)
