package types

import "time"

// HTTPConfig holds settings used when the input is a URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with download requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ExtractConfig holds settings for single-document extraction.
type ExtractConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Input is the PDF path or URL used when no argument is given.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the text file to write (default "pdf_content.txt").
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Providers ranks the PDF libraries to try. Empty means the default order.
	Providers []string `json:"providers,omitempty" yaml:"providers,omitempty" mapstructure:"providers"`

	// ErrorAsContent writes the error text as file content instead of failing.
	ErrorAsContent bool `json:"error_as_content" yaml:"error_as_content" mapstructure:"error_as_content"`

	// Validate runs a structural check on the PDF before extracting.
	Validate bool `json:"validate" yaml:"validate" mapstructure:"validate"`

	// Catalog is the SQLite database path. Empty disables the catalog.
	Catalog string `json:"catalog,omitempty" yaml:"catalog,omitempty" mapstructure:"catalog"`
}

// BatchConfig holds settings for batch extraction.
type BatchConfig struct {
	ExtractConfig `yaml:",inline" mapstructure:",squash"`

	// Dir is scanned for *.pdf files in addition to explicit arguments.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`

	// OutDir receives one <name>.txt per input (default "text").
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir"`

	// Force re-extracts files whose output already exists.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`

	// Report is an optional YAML file receiving the per-file results.
	Report string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`
}
