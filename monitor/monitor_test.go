package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylanjwolff/linepeek/runner"
)

func TestMonitor_Record(t *testing.T) {
	mon := New(func(string) {})

	mon.Record(runner.Outcome{Status: runner.Passed})
	mon.Record(runner.Outcome{Status: runner.Passed})
	mon.Record(runner.Outcome{Status: runner.Crashed})
	mon.Record(runner.Outcome{Status: runner.Hung})
	mon.Record(runner.Outcome{Status: runner.Errored})

	assert.Equal(t, uint64(5), mon.Execs)
	assert.Equal(t, uint64(1), mon.Crashes)
	assert.Equal(t, uint64(1), mon.Hangs)
	assert.Equal(t, uint64(1), mon.Errors)
}

func TestMonitor_Display(t *testing.T) {
	var lines []string
	mon := New(func(line string) { lines = append(lines, line) })
	mon.Corpus = 7

	mon.Record(runner.Outcome{Status: runner.Passed})
	mon.Record(runner.Outcome{Status: runner.Crashed})
	mon.Display("status")

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[status]")
	assert.Contains(t, lines[0], "corpus: 7")
	assert.Contains(t, lines[0], "execs: 2")
	assert.Contains(t, lines[0], "crashes: 1")
}

func TestMonitor_FormatHMS(t *testing.T) {
	assert.Equal(t, "0h-0m-0s", formatHMS(0))
	assert.Equal(t, "0h-0m-59s", formatHMS(59*time.Second))
	assert.Equal(t, "0h-2m-17s", formatHMS(2*time.Minute+17*time.Second))
	assert.Equal(t, "3h-0m-5s", formatHMS(3*time.Hour+5*time.Second))
}

func TestMonitor_Dump(t *testing.T) {
	mon := New(func(string) {})
	mon.Record(runner.Outcome{Status: runner.Crashed})
	assert.Contains(t, mon.Dump(), "Crashes")
}
