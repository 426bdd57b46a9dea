// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/md2ipynb/internal/history"
	"github.com/pdiddy/md2ipynb/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List conversions recorded in the history log",
	Long: `History lists conversions recorded by convert --history, newest first.
Each entry shows the run, the source and output paths, the cell counts, and
the BLAKE3 digest of the converted source.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(cmd.Context(), history.ListOptions{Source: source, Limit: limit})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(cmd.OutOrStdout(), records, jsonOutput)
}

func formatHistoryOutput(w io.Writer, records []types.ConversionRecord, jsonOutput bool) error {
	if jsonOutput {
		if records == nil {
			records = []types.ConversionRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-8s  %-30s  %-30s  %5s  %4s  %s\n",
		"Converted", "Run", "Source", "Output", "Cells", "Code", "Digest")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range records {
		code := fmt.Sprintf("%d", r.CodeCells)
		if r.Unterminated {
			code += "*"
		}
		fmt.Fprintf(w, "%-20s  %-8s  %-30s  %-30s  %5d  %4s  %s\n",
			r.ConvertedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(r.RunID, 8), truncate(r.SourcePath, 30), truncate(r.OutputPath, 30),
			r.Cells, code, truncate(r.Digest, 16))
	}
	return nil
}

// truncate shortens s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func init() {
	historyCmd.Flags().String("source", "", "only show conversions of this source path")
	historyCmd.Flags().Int("limit", 50, "maximum number of entries")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
