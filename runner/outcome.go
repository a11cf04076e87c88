package runner

import (
	"syscall"
	"time"

	"github.com/rs/xid"
)

// RunStatus is used to define the potential classifications for a
// single run of the target
type RunStatus int

const (
	// Unknown is the default value, and should be treated as an error
	Unknown RunStatus = iota
	// Passed means the target exited on its own with status zero
	Passed
	// Errored means the target exited on its own with a nonzero status
	Errored
	// Crashed means the target was terminated by a signal
	Crashed
	// Hung means the run deadline expired and the target was killed
	Hung
)

func (s RunStatus) String() string {
	switch s {
	case Passed:
		return "passed"
	case Errored:
		return "errored"
	case Crashed:
		return "crashed"
	case Hung:
		return "hung"
	}
	return "unknown"
}

// Outcome describes one completed run of the target.
type Outcome struct {
	ID       xid.ID
	Status   RunStatus
	ExitCode int
	Signal   syscall.Signal
	Duration time.Duration
	Testcase string
}
