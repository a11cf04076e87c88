package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dylanjwolff/linepeek/monitor"
	"github.com/dylanjwolff/linepeek/runner"
)

var (
	targetPath string
	corpusDir  string
	timeout    time.Duration
	iterations int
)

// statusEvery is how many runs pass between periodic status lines.
const statusEvery = 25

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the target over every bundled testcase in a corpus",
	Long: `Materializes each bundled testcase as the target's file
arguments, runs the target, and tallies what happened. Crashing and
hanging testcases are preserved for later splitting with 'harness
split'.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := runner.NewManager(runner.Config{
			TargetPath: targetPath,
			Timeout:    timeout,
		})
		if err != nil {
			return fmt.Errorf("unable to set up runner: %w", err)
		}
		defer mgr.Close()

		testcases, err := listTestcases(corpusDir)
		if err != nil {
			return err
		}
		if len(testcases) == 0 {
			return fmt.Errorf("no testcases in '%v', run 'harness bundle' first", corpusDir)
		}

		mon := monitor.New(func(line string) {
			fmt.Fprintln(os.Stderr, line)
		})
		mon.Corpus = len(testcases)

		total := iterations
		if total <= 0 {
			total = len(testcases)
		}

		ctx := cmd.Context()
		for done := 0; done < total; {
			for _, tc := range testcases {
				// failed attempts still count toward the total, so a
				// corpus of unreadable entries can't spin forever
				done++

				out, err := mgr.Run(ctx, tc)
				if err != nil {
					zap.L().Warn("run failed",
						zap.String("testcase", tc), zap.Error(err))
				} else {
					zap.L().Debug("run finished",
						zap.String("id", out.ID.String()),
						zap.Stringer("status", out.Status),
						zap.Duration("duration", out.Duration))

					mon.Record(out)
				}

				if done%statusEvery == 0 {
					mon.Display("status")
				}
				if done >= total {
					break
				}
			}
		}

		mon.Display("done")
		if verbose {
			fmt.Fprint(os.Stderr, mon.Dump())
		}

		if found := mon.Crashes + mon.Hangs; found > 0 {
			fmt.Fprintf(os.Stderr, "crashing testcases preserved in %v\n", mgr.CrashDir())
			return fmt.Errorf("%v crashing runs out of %v", found, mon.Execs)
		}

		return nil
	},
}

func listTestcases(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read corpus directory: %w", err)
	}

	var testcases []string
	for _, e := range entries {
		if !e.IsDir() {
			testcases = append(testcases, filepath.Join(dir, e.Name()))
		}
	}

	return testcases, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(
		&targetPath, "target", "t", "",
		"path to the target binary to run",
	)

	runCmd.Flags().StringVarP(
		&corpusDir, "corpus", "c", "",
		"directory of bundled testcases",
	)

	runCmd.Flags().DurationVar(
		&timeout, "timeout", runner.DefaultTimeout,
		"per-run deadline before a run counts as a hang",
	)

	runCmd.Flags().IntVarP(
		&iterations, "iterations", "n", 0,
		"total runs to perform, looping over the corpus; 0 means one pass",
	)

	cobra.CheckErr(runCmd.MarkFlagRequired("target"))
	cobra.CheckErr(runCmd.MarkFlagRequired("corpus"))
}
