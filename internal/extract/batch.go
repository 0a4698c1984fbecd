// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-extract/internal/catalog"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// Catalog stores extraction history. *catalog.Catalog implements it.
type Catalog interface {
	Record(ctx context.Context, rec types.Record) error
	Last(ctx context.Context, source string) (types.Record, bool, error)
}

// BatchOptions configures ExtractBatch.
type BatchOptions struct {
	// OutDir receives <name>.txt for every input <name>.pdf.
	OutDir string

	// Force re-extracts files whose output already exists.
	Force bool

	// Catalog, when set, records every run and refines skipping: an
	// existing output is kept only if the source checksum matches the last
	// successful run.
	Catalog Catalog
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int            `yaml:"extracted"`
	Skipped   int            `yaml:"skipped"`
	Failed    int            `yaml:"failed"`
	Results   []types.Result `yaml:"results"`
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the text file path for pdfPath under outDir.
func OutputPath(pdfPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(outDir, base+".txt")
}

// ExtractBatch extracts each PDF in order, printing per-file status to w
// and returning a summary. It continues after individual failures and stops
// before the next file once ctx is done.
//
// Two inputs that map to the same output file (same base name in different
// directories, or names differing only in case) are not both written: every
// input after the first fails.
//
// Without a catalog an existing output is trusted as a past success, so
// ErrorAsContent is not applied: a failed document writes no file and is
// retried on the next run.
func ExtractBatch(ctx context.Context, e *Extractor, pdfPaths []string, opts BatchOptions, w io.Writer) BatchResult {
	if opts.Catalog == nil && e.opts.ErrorAsContent {
		plain := *e
		plain.opts.ErrorAsContent = false
		e = &plain
	}

	var result BatchResult
	claimed := make(map[string]string, len(pdfPaths))
	for _, p := range pdfPaths {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "stopped: %d file(s) not processed (%v)\n", len(pdfPaths)-result.Total(), err)
			break
		}

		var res types.Result
		outPath := OutputPath(p, opts.OutDir)
		key := strings.ToLower(filepath.Clean(outPath))
		if prev, ok := claimed[key]; ok {
			res = collision(p, prev, outPath, e.Provider(), w)
		} else {
			claimed[key] = p
			res = extractOne(ctx, e, p, outPath, opts, w)
		}

		switch res.Status {
		case types.ExtractionDone:
			result.Extracted++
		case types.ExtractionSkipped:
			result.Skipped++
		case types.ExtractionFailed:
			result.Failed++
		}
		result.Results = append(result.Results, res)
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result
}

func collision(pdfPath, prev, outPath, providerName string, w io.Writer) types.Result {
	err := fmt.Errorf("output %s already used by %s", outPath, prev)
	fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(pdfPath), err)
	return types.Result{
		Source:   pdfPath,
		Output:   outPath,
		Provider: providerName,
		Status:   types.ExtractionFailed,
		Error:    err.Error(),
	}
}

func extractOne(ctx context.Context, e *Extractor, pdfPath, outPath string, opts BatchOptions, w io.Writer) types.Result {
	name := filepath.Base(pdfPath)

	if !opts.Force && upToDate(ctx, e, pdfPath, outPath, opts.Catalog) {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
		return types.Result{
			Source:   pdfPath,
			Output:   outPath,
			Provider: e.Provider(),
			Status:   types.ExtractionSkipped,
		}
	}

	res, err := e.ExtractFile(pdfPath, outPath)
	if opts.Catalog != nil {
		if rerr := RecordResult(ctx, opts.Catalog, res); rerr != nil {
			e.logger.Warn("catalog record failed", zap.String("file", pdfPath), zap.Error(rerr))
		}
	}

	switch {
	case err != nil:
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
	case res.Status == types.ExtractionFailed:
		fmt.Fprintf(w, "failed:  %s (%s, error written to %s)\n", name, res.Error, outPath)
	default:
		fmt.Fprintf(w, "extracted: %s (%d pages)\n", name, res.Pages)
	}
	return res
}

// upToDate reports whether outPath can be kept. Without a catalog an
// existing output is enough; with one, the source must also be unchanged
// since its last successful extraction to the same output.
func upToDate(ctx context.Context, e *Extractor, pdfPath, outPath string, cat Catalog) bool {
	if _, err := os.Stat(outPath); err != nil {
		return false
	}
	if cat == nil {
		return true
	}

	last, ok, err := cat.Last(ctx, sourceKey(pdfPath))
	if err != nil {
		e.logger.Warn("catalog lookup failed", zap.String("file", pdfPath), zap.Error(err))
		return false
	}
	if !ok || last.Output != outPath {
		return false
	}
	sum, err := catalog.Checksum(pdfPath)
	if err != nil {
		return false
	}
	return sum == last.Checksum
}

// RecordResult stores res in cat, keyed by the absolute source path and
// the source file's current checksum. Skipped results are not recorded.
func RecordResult(ctx context.Context, cat Catalog, res types.Result) error {
	if res.Status == types.ExtractionSkipped {
		return nil
	}
	rec := types.Record{
		Source:   sourceKey(res.Source),
		Provider: res.Provider,
		Pages:    res.Pages,
		Output:   res.Output,
		Status:   res.Status,
		Error:    res.Error,
	}
	if sum, err := catalog.Checksum(res.Source); err == nil {
		rec.Checksum = sum
	}
	return cat.Record(ctx, rec)
}

func sourceKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// FindPDFs returns the *.pdf files directly inside dir, sorted by name.
// The extension match is case-insensitive.
func FindPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// WriteReport writes result as YAML to path.
func WriteReport(path string, result BatchResult) error {
	report := struct {
		Summary struct {
			Extracted int `yaml:"extracted"`
			Skipped   int `yaml:"skipped"`
			Failed    int `yaml:"failed"`
			Total     int `yaml:"total"`
		} `yaml:"summary"`
		Results []types.Result `yaml:"results"`
	}{Results: result.Results}
	report.Summary.Extracted = result.Extracted
	report.Summary.Skipped = result.Skipped
	report.Summary.Failed = result.Failed
	report.Summary.Total = result.Total()

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
