package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dylanjwolff/linepeek/corpus"
)

// bundleCmd represents the bundle command
var bundleCmd = &cobra.Command{
	Use:   "bundle <raw-dir> <out-dir>",
	Short: "Bundle raw input files into multi-part testcases",
	Long: `Pairs every file in the raw directory with a generated second
part and writes the bundled testcases into the output directory. An
empty raw directory produces fully random testcases instead.`,
	Args: cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := corpus.Bundle(args[0], args[1])
		if err != nil {
			return err
		}

		for _, path := range created {
			fmt.Printf("Created %v\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bundleCmd)
}
