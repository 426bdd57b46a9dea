// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/md2ipynb/internal/convert"
	"github.com/pdiddy/md2ipynb/internal/history"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert markdown documents to Jupyter notebooks",
	Long: `Convert reads markdown documents and writes nbformat 4 notebooks.

With a single file and no --out-dir or --write, the notebook JSON is printed to
standard output. With several files, --write, or --out-dir, each x.md becomes
x.ipynb next to its source or under --out-dir; existing notebooks are skipped
unless --force is given. --batch DIR converts every file under DIR matching
--pattern and mirrors the directory layout under --out-dir.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	batchDir, _ := cmd.Flags().GetString("batch")
	write, _ := cmd.Flags().GetBool("write")
	if batchDir == "" && len(args) == 0 {
		return fmt.Errorf("at least one file or --batch DIR required")
	}

	cfg, err := conversionConfig()
	if err != nil {
		return err
	}

	opts := []convert.Option{convert.WithLogger(logger)}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		runID := uuid.NewString()
		logger.Debug("recording history", "path", cfg.History.Path, "run_id", runID)
		opts = append(opts, convert.WithRecorder(store, runID))
	}
	conv := convert.New(cfg, opts...)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if batchDir == "" && len(args) == 1 && cfg.OutDir == "" && !write {
		return conv.ConvertToWriter(ctx, args[0], out)
	}

	var result convert.BatchResult
	if batchDir != "" {
		result, err = conv.ConvertDir(ctx, batchDir, out)
		if err != nil {
			return err
		}
	} else {
		result = conv.ConvertBatch(ctx, args, out)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return ctx.Err()
}

func init() {
	flags := convertCmd.Flags()
	flags.String("out-dir", "", "directory for .ipynb output (default: next to each source)")
	flags.Bool("write", false, "write notebooks to files even when converting a single document")
	flags.Bool("force", false, "overwrite existing notebooks")
	flags.String("indent", " ", "JSON indentation (empty for compact output)")
	flags.String("batch", "", "convert every matching file under this directory")
	flags.String("pattern", "**/*.md", "glob selecting files in --batch mode")
	flags.Bool("history", false, "record conversions in the history log")

	mustBind("out_dir", flags.Lookup("out-dir"))
	mustBind("force", flags.Lookup("force"))
	mustBind("indent", flags.Lookup("indent"))
	mustBind("pattern", flags.Lookup("pattern"))
	mustBind("history.enabled", flags.Lookup("history"))

	rootCmd.AddCommand(convertCmd)
}
