// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect reports structural facts about a PDF using pdfcpu: page
// count and whether the file passes relaxed validation.
package inspect

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu otherwise creates a configuration directory under the user's
	// config home on first use.
	api.DisableConfigDir()
}

// Info describes a PDF file.
type Info struct {
	Path  string `json:"path" yaml:"path"`
	Size  int64  `json:"size" yaml:"size"`
	Pages int    `json:"pages" yaml:"pages"`
	Valid bool   `json:"valid" yaml:"valid"`

	// ValidationError explains why Valid is false.
	ValidationError string `json:"validation_error,omitempty" yaml:"validation_error,omitempty"`
}

func newConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Inspect validates the PDF at path and counts its pages. A file that
// fails validation is not an error: Info.Valid is false and
// ValidationError says why. Errors are returned only when the file cannot
// be examined at all.
func Inspect(path string) (info Info, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	info = Info{Path: path, Size: fi.Size()}

	if verr := validate(path); verr != nil {
		info.ValidationError = verr.Error()
		return info, nil
	}
	info.Valid = true

	n, err := pageCount(path)
	if err != nil {
		return info, fmt.Errorf("counting pages in %s: %w", path, err)
	}
	info.Pages = n
	return info, nil
}

// Check returns an error when path is not a valid PDF. Its signature fits
// extract.Options.Preflight.
func Check(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if err := validate(path); err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	return nil
}

func validate(path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()
	return api.ValidateFile(path, newConfig())
}

func pageCount(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()
	return api.PageCountFile(path)
}
