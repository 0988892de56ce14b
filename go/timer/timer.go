// timer makes timing operations easier.
package timer

import (
	"time"

	"github.com/aoc2020/calc/go/sklog"
	"github.com/hako/durafmt"
)

// Timer is for timing events. When finished the duration is reported
// via sklog.
//
// The standard way to use Timer is at the top of the func you
// want to measure:
//
//	defer timer.New("batch sum").Stop()
type Timer struct {
	Begin time.Time
	Name  string
}

func New(name string) *Timer {
	return &Timer{
		Begin: time.Now(),
		Name:  name,
	}
}

// Stop logs and returns the time elapsed since New.
func (t Timer) Stop() time.Duration {
	d := time.Since(t.Begin)
	sklog.InfofWithDepth(1, "%s %s", t.Name, durafmt.Parse(d))
	return d
}
