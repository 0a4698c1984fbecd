// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-extract/internal/catalog"
	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/internal/fetch"
	"github.com/pdiddy/pdf-extract/internal/inspect"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdf-or-url]",
	Short: "Extract the text of one PDF into a text file",
	Long: `Extract reads every page of a PDF in order and writes the text to the
output file, each page followed by a newline. The output file is replaced
atomically.

If extraction fails the command exits with status 1 and the output file is
left untouched. With --error-as-content the error text is written to the
output file instead and the command succeeds.

The input may be an http(s) URL; it is downloaded to a temporary file first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	flags := extractCmd.Flags()
	flags.StringP("output", "o", defaultOutput, "text file to write")
	flags.Bool("error-as-content", false, "write the error text to the output file instead of failing")
	flags.Bool("validate", false, "validate the PDF structure before extracting")

	mustBind("extract.output", flags.Lookup("output"))
	mustBind("extract.error_as_content", flags.Lookup("error-as-content"))
	mustBind("extract.validate", flags.Lookup("validate"))

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractConfig()
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	return extractDocument(cmd.Context(), cfg, cmd.OutOrStdout())
}

// extractDocument resolves a provider, extracts cfg.Input to cfg.Output,
// and records the run when a catalog is configured. Provider resolution
// happens first, so a missing PDF library never touches the output.
func extractDocument(ctx context.Context, cfg types.ExtractConfig, w io.Writer) error {
	p, err := resolveProvider(cfg.Providers)
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		return errors.New("provide a PDF path or URL, or set extract.input in the config file")
	}

	pdfPath := cfg.Input
	if fetch.IsURL(cfg.Input) {
		client := &http.Client{Timeout: cfg.Timeout}
		pdfPath, err = fetch.Download(ctx, client, cfg.Input, "", cfg.UserAgent, logger)
		if err != nil {
			return fmt.Errorf("downloading %s: %w", cfg.Input, err)
		}
		defer os.Remove(pdfPath)
	}

	opts := extract.Options{ErrorAsContent: cfg.ErrorAsContent}
	if cfg.Validate {
		opts.Preflight = inspect.Check
	}
	e := extract.New(p, logger, opts)

	res, extractErr := e.ExtractFile(pdfPath, cfg.Output)
	if cfg.Catalog != "" {
		recordRun(ctx, cfg.Catalog, res, cfg.Input)
	}
	if extractErr != nil {
		return extractErr
	}

	fmt.Fprintf(w, "Done writing to %s\n", cfg.Output)
	return nil
}

// recordRun stores res in the catalog at path. Catalog problems are logged
// and never fail the extraction.
func recordRun(ctx context.Context, path string, res types.Result, input string) {
	cat, err := catalog.Open(path)
	if err != nil {
		logger.Warn("catalog unavailable", zap.String("catalog", path), zap.Error(err))
		return
	}
	defer cat.Close()

	if fetch.IsURL(input) {
		// Checksum the downloaded copy but key the record by URL.
		if err := cat.Record(ctx, urlRecord(res, input)); err != nil {
			logger.Warn("catalog record failed", zap.Error(err))
		}
		return
	}
	if err := extract.RecordResult(ctx, cat, res); err != nil {
		logger.Warn("catalog record failed", zap.Error(err))
	}
}

func urlRecord(res types.Result, url string) types.Record {
	rec := types.Record{
		Source:   url,
		Provider: res.Provider,
		Pages:    res.Pages,
		Output:   res.Output,
		Status:   res.Status,
		Error:    res.Error,
	}
	if sum, err := catalog.Checksum(res.Source); err == nil {
		rec.Checksum = sum
	}
	return rec
}
