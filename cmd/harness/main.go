package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "harness",
	Short: "Tooling for driving the linepeek target program",
	Long: `The harness side of linepeek: bundle raw input files into
multi-part testcases, split bundled testcases back apart, and run the
target binary over a corpus while watching for crashes and hangs.

The target's stdout is its whole contract, so the harness never
touches it; everything the harness itself has to say goes to stderr.`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		conf := zap.NewDevelopmentConfig()
		if !verbose {
			conf.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		}

		logger, err := conf.Build()
		if err != nil {
			return fmt.Errorf("unable to set up logging: %w", err)
		}

		zap.ReplaceGlobals(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"enable debug logging and the raw stats dump after a run",
	)
}
