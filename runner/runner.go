// Package runner executes the target binary against bundled
// testcases and classifies what each run did: clean exit, nonzero
// exit, death by signal, or a hang that blew the run deadline.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/dylanjwolff/linepeek/corpus"
)

// DefaultTimeout bounds a single run of the target when the config
// doesn't say otherwise.
const DefaultTimeout = 2 * time.Second

// Config ...
type Config struct {
	// TargetPath is the binary the manager invokes for every testcase
	TargetPath string

	// CrashDir is where crashing testcases get preserved; when empty
	// the manager picks a directory under its own temp root
	CrashDir string

	// Timeout bounds a single run; zero or negative means DefaultTimeout
	Timeout time.Duration
}

// Manager materializes testcases as files and runs the target over
// them, one run at a time.
type Manager struct {
	conf   Config
	tmpDir string
}

// NewManager checks that the configured target exists and is
// runnable, then sets up the working directories.
func NewManager(conf Config) (*Manager, error) {
	st, err := os.Stat(conf.TargetPath)
	if err != nil {
		return nil, fmt.Errorf("unable to stat target binary: %w", err)
	}

	if st.IsDir() || st.Mode()&0111 == 0 {
		return nil, fmt.Errorf("target '%v' is not an executable file", conf.TargetPath)
	}

	tmp, err := os.MkdirTemp("", "linepeek-harness")
	if err != nil {
		return nil, fmt.Errorf("unable to set up temporary directory: %w", err)
	}

	if conf.Timeout <= 0 {
		conf.Timeout = DefaultTimeout
	}

	if conf.CrashDir == "" {
		conf.CrashDir = filepath.Join(tmp, "crashes")
	}

	if err := os.MkdirAll(conf.CrashDir, 0755); err != nil {
		os.RemoveAll(tmp)
		return nil, fmt.Errorf("unable to create crash directory: %w", err)
	}

	return &Manager{conf: conf, tmpDir: tmp}, nil
}

// CrashDir is where the manager preserves crashing testcases.
func (m *Manager) CrashDir() string {
	return m.conf.CrashDir
}

// Close removes the manager's working directory. Preserved crashes
// survive only when the crash directory lives somewhere else.
func (m *Manager) Close() error {
	return os.RemoveAll(m.tmpDir)
}

// Run executes the target once against the bundled testcase at
// path. The testcase's parts are written out as files and passed to
// the target as its path arguments; stdout and stderr are captured
// to a per-run file that is cleaned up with the run directory.
func (m *Manager) Run(ctx context.Context, testcasePath string) (Outcome, error) {
	out := Outcome{ID: xid.New(), Testcase: testcasePath}

	in, err := corpus.ReadFile(testcasePath)
	if err != nil {
		return out, err
	}

	runDir := filepath.Join(m.tmpDir, out.ID.String())
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return out, fmt.Errorf("unable to create run directory: %w", err)
	}
	defer os.RemoveAll(runDir)

	args := make([]string, 0, len(in.Parts))
	for i, part := range in.Parts {
		name := fmt.Sprintf("arg%d", i)
		if i < len(corpus.PartExtensions) {
			name += corpus.PartExtensions[i]
		}

		argPath := filepath.Join(runDir, name)
		if err := os.WriteFile(argPath, part, 0644); err != nil {
			return out, fmt.Errorf("unable to materialize testcase part: %w", err)
		}
		args = append(args, argPath)
	}

	capture, err := os.Create(filepath.Join(runDir, "output"))
	if err != nil {
		return out, fmt.Errorf("unable to create file to capture output: %w", err)
	}
	defer capture.Close()

	ctx, cancel := context.WithTimeout(ctx, m.conf.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.conf.TargetPath, args...)
	cmd.Stdout = capture
	cmd.Stderr = capture
	cmd.SysProcAttr = &syscall.SysProcAttr{
		// the target dies with the harness, no orphans
		Pdeathsig: unix.SIGKILL,
	}

	start := time.Now()
	runErr := cmd.Run()
	out.Duration = time.Since(start)

	out.classify(ctx, runErr)

	if out.Status == Crashed || out.Status == Hung {
		if err := m.preserve(testcasePath, out); err != nil {
			zap.L().Warn("unable to preserve crashing testcase", zap.Error(err))
		}
	}

	return out, nil
}

// preserve copies a crashing testcase into the crash directory so it
// survives run-directory cleanup and corpus rewrites.
func (m *Manager) preserve(testcasePath string, out Outcome) error {
	bits, err := os.ReadFile(testcasePath)
	if err != nil {
		return fmt.Errorf("unable to re-read testcase: %w", err)
	}

	dest := filepath.Join(m.conf.CrashDir, fmt.Sprintf("%v-%v", out.Status, out.ID))
	if err := os.WriteFile(dest, bits, 0644); err != nil {
		return fmt.Errorf("unable to write preserved testcase: %w", err)
	}

	return nil
}

func (o *Outcome) classify(ctx context.Context, runErr error) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		o.Status = Hung
		return
	}

	if runErr == nil {
		o.Status = Passed
		return
	}

	var exit *exec.ExitError
	if !errors.As(runErr, &exit) {
		// target never started; leave the status at Unknown
		return
	}

	if ws, ok := exit.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		o.Status = Crashed
		o.Signal = ws.Signal()
		return
	}

	o.Status = Errored
	o.ExitCode = exit.ExitCode()
}
