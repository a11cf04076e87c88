package runner

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylanjwolff/linepeek/corpus"
)

// writeScript builds a stand-in target so runs don't depend on a
// compiled linepeek binary.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func writeTestcase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), xid.New().String())
	in := corpus.Input{Parts: [][]byte{[]byte("a\nb\n"), []byte("c\n")}}
	require.NoError(t, in.WriteFile(path))
	return path
}

func TestRunner_NewManager(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		_, err := NewManager(Config{TargetPath: filepath.Join(t.TempDir(), "nope")})
		assert.Error(t, err)
	})

	t.Run("target must be executable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

		_, err := NewManager(Config{TargetPath: path})
		assert.Error(t, err)
	})

	t.Run("valid target", func(t *testing.T) {
		mgr, err := NewManager(Config{TargetPath: writeScript(t, "exit 0")})
		require.NoError(t, err)
		require.NotNil(t, mgr)
		defer mgr.Close()

		assert.DirExists(t, mgr.CrashDir())
	})
}

func TestRunner_Run(t *testing.T) {
	run := func(t *testing.T, script string, timeout time.Duration) Outcome {
		t.Helper()

		mgr, err := NewManager(Config{
			TargetPath: writeScript(t, script),
			Timeout:    timeout,
		})
		require.NoError(t, err)
		t.Cleanup(func() { mgr.Close() })

		out, err := mgr.Run(context.Background(), writeTestcase(t))
		require.NoError(t, err)
		return out
	}

	t.Run("clean exit", func(t *testing.T) {
		out := run(t, "exit 0", 0)
		assert.Equal(t, Passed, out.Status)
		assert.Equal(t, 0, out.ExitCode)
	})

	t.Run("nonzero exit", func(t *testing.T) {
		out := run(t, "exit 3", 0)
		assert.Equal(t, Errored, out.Status)
		assert.Equal(t, 3, out.ExitCode)
	})

	t.Run("death by signal", func(t *testing.T) {
		out := run(t, "kill -s SEGV $$", 0)
		assert.Equal(t, Crashed, out.Status)
		assert.Equal(t, syscall.SIGSEGV, out.Signal)
	})

	t.Run("hang hits the deadline", func(t *testing.T) {
		out := run(t, "sleep 5", 100*time.Millisecond)
		assert.Equal(t, Hung, out.Status)
		assert.Less(t, out.Duration, time.Second)
	})

	t.Run("target receives the materialized parts", func(t *testing.T) {
		// the stand-in target echoes its first argument's contents,
		// which the capture file swallows, then exits with the number
		// of arguments it got
		out := run(t, `cat "$1"; exit $#`, 0)
		assert.Equal(t, Errored, out.Status)
		assert.Equal(t, 2, out.ExitCode)
	})

	t.Run("crashing testcase is preserved", func(t *testing.T) {
		mgr, err := NewManager(Config{TargetPath: writeScript(t, "kill -s SEGV $$")})
		require.NoError(t, err)
		defer mgr.Close()

		tc := writeTestcase(t)
		out, err := mgr.Run(context.Background(), tc)
		require.NoError(t, err)
		require.Equal(t, Crashed, out.Status)

		entries, err := os.ReadDir(mgr.CrashDir())
		require.NoError(t, err)
		require.Len(t, entries, 1)

		// the preserved copy round-trips as a testcase
		preserved, err := corpus.ReadFile(filepath.Join(mgr.CrashDir(), entries[0].Name()))
		require.NoError(t, err)
		assert.Len(t, preserved.Parts, 2)
	})

	t.Run("unreadable testcase is an error", func(t *testing.T) {
		mgr, err := NewManager(Config{TargetPath: writeScript(t, "exit 0")})
		require.NoError(t, err)
		defer mgr.Close()

		_, err = mgr.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}
