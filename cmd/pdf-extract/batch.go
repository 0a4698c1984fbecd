// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/catalog"
	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/internal/inspect"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch [pdfs...]",
	Short: "Extract many PDFs into a directory of text files",
	Long: `Batch extracts each PDF into <out-dir>/<name>.txt, printing one status
line per file and a summary. Files whose output already exists are skipped
unless --force is given; with --catalog, an existing output is kept only
when the PDF is unchanged since its last successful extraction.

The command exits with status 1 if any file failed.`,
	RunE: runBatch,
}

func init() {
	flags := batchCmd.Flags()
	flags.String("dir", "", "extract every *.pdf file in this directory")
	flags.String("out-dir", defaultOutDir, "directory for the text files")
	flags.Bool("force", false, "re-extract files whose output already exists")
	flags.String("report", "", "write a YAML report of per-file results to this path")

	mustBind("batch.dir", flags.Lookup("dir"))
	mustBind("batch.out_dir", flags.Lookup("out-dir"))
	mustBind("batch.force", flags.Lookup("force"))
	mustBind("batch.report", flags.Lookup("report"))

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	return extractMany(cmd.Context(), batchConfig(), args, cmd.OutOrStdout())
}

func extractMany(ctx context.Context, cfg types.BatchConfig, paths []string, w io.Writer) error {
	p, err := resolveProvider(cfg.Providers)
	if err != nil {
		return err
	}

	if cfg.Dir != "" {
		found, err := extract.FindPDFs(cfg.Dir)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	paths = uniquePaths(paths)
	if len(paths) == 0 {
		return errors.New("provide one or more PDF files, or --dir")
	}

	opts := extract.Options{ErrorAsContent: cfg.ErrorAsContent}
	if cfg.Validate {
		opts.Preflight = inspect.Check
	}
	e := extract.New(p, logger, opts)

	batchOpts := extract.BatchOptions{OutDir: cfg.OutDir, Force: cfg.Force}
	if cfg.Catalog != "" {
		cat, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return err
		}
		defer cat.Close()
		batchOpts.Catalog = cat
	}

	result := extract.ExtractBatch(ctx, e, paths, batchOpts, w)

	if cfg.Report != "" {
		if err := extract.WriteReport(cfg.Report, result); err != nil {
			return err
		}
	}
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", result.Failed)
	}
	return nil
}

// uniquePaths drops repeated inputs, comparing absolute paths, and keeps
// the first occurrence's order.
func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := p
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
