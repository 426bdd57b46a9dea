// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/md2ipynb/internal/convert"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show how a document is split into prose and code blocks",
	Long: `Inspect segments a markdown document the same way convert does and
prints one entry per block: its kind, starting line, line count, the execution
count its code cell would get, and the headings found in prose blocks.
Unterminated code fences are flagged.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	summaries, err := convert.New(cfg, convert.WithLogger(logger)).Inspect(f)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	return convert.WriteInspectYAML(cmd.OutOrStdout(), summaries)
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output as JSON instead of YAML")

	rootCmd.AddCommand(inspectCmd)
}
