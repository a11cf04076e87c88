package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dylanjwolff/linepeek/corpus"
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split <testcase> [dest-dir]",
	Short: "Split a bundled testcase back into its part files",
	Long: `Decodes a bundled testcase and writes each part next to it
(or into the destination directory), named after the testcase with
the part's extension. Useful for inspecting preserved crashes.`,
	Args: cobra.RangeArgs(1, 2),

	RunE: func(cmd *cobra.Command, args []string) error {
		destDir := filepath.Dir(args[0])
		if len(args) == 2 {
			destDir = args[1]
		}

		written, err := corpus.Split(args[0], destDir)
		if err != nil {
			return err
		}

		for _, path := range written {
			fmt.Printf("Wrote %v\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
