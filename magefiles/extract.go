//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and extracts every PDF in pdfs/ into text/,
// writing a YAML report next to the output.
func Extract() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "batch",
		"--dir", "pdfs",
		"--out-dir", "text",
		"--report", filepath.Join("text", "report.yaml"),
		"--catalog", filepath.Join(".pdf-extract", "catalog.db"))
}
