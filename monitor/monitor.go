// Package monitor aggregates run outcomes and renders the periodic
// status line the harness prints while driving the target.
package monitor

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/dylanjwolff/linepeek/runner"
)

// PrintFn receives each rendered status line. The harness passes
// plain Println; tests pass a capture function.
type PrintFn func(string)

// Monitor tallies outcomes across a harness session. Not safe for
// concurrent use; the runner hands over one outcome at a time.
type Monitor struct {
	print PrintFn
	start time.Time

	Execs   uint64
	Crashes uint64
	Hangs   uint64
	Errors  uint64
	Corpus  int
}

// New ...
func New(print PrintFn) *Monitor {
	return &Monitor{print: print, start: time.Now()}
}

// Record tallies one completed run.
func (m *Monitor) Record(out runner.Outcome) {
	m.Execs++

	switch out.Status {
	case runner.Crashed:
		m.Crashes++
	case runner.Hung:
		m.Hangs++
	case runner.Errored:
		m.Errors++
	}
}

// Display renders the current stats through the print function,
// tagged with the event that triggered it.
func (m *Monitor) Display(event string) {
	elapsed := time.Since(m.start)
	m.print(fmt.Sprintf(
		"[%v] run time: %v, corpus: %v, execs: %v, exec/sec: %.1f, crashes: %v, hangs: %v",
		event, formatHMS(elapsed), m.Corpus, m.Execs,
		m.execsPerSec(elapsed), m.Crashes, m.Hangs,
	))
}

// Dump returns the raw counters, for verbose troubleshooting.
func (m *Monitor) Dump() string {
	return spew.Sdump(*m)
}

func (m *Monitor) execsPerSec(elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(m.Execs) / secs
}

// formatHMS renders a duration the way fuzzer status lines usually
// show run time, eg "0h-2m-17s".
func formatHMS(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	min := d / time.Minute
	d -= min * time.Minute

	return fmt.Sprintf("%dh-%dm-%ds", h, min, d/time.Second)
}
