// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-extract CLI.
// See docs/ARCHITECTURE § Command Line.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-extract/internal/provider"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultOutput  = "pdf_content.txt"
	defaultOutDir  = "text"
	defaultTimeout = 60 * time.Second
)

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop()

// resolveProvider picks the PDF library; tests swap it out.
var resolveProvider = provider.Resolve

// rootCmd is the base command for the pdf-extract CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-extract",
	Short: "Extract plain text from PDF documents",
	Long: `pdf-extract reads PDF documents page by page and writes their text to
plain files, one newline after each page.

The PDF library is chosen at startup from a ranked list of providers
(ledongthuc, dslipak, rsc, pdftotext); the first available one is used.
If none is available the command exits with status 1 without writing
anything.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: pdf-extract.yaml in . or ~/.config/pdf-extract)")
	flags.StringSlice("provider", nil, "PDF providers to try, in order (default: ledongthuc,dslipak,rsc,pdftotext)")
	flags.String("catalog", "", "SQLite catalog recording extraction runs (disabled when empty)")
	flags.BoolP("verbose", "v", false, "log debug output to stderr")

	mustBind("providers", flags.Lookup("provider"))
	mustBind("catalog", flags.Lookup("catalog"))
	mustBind("verbose", flags.Lookup("verbose"))

	viper.SetDefault("extract.output", defaultOutput)
	viper.SetDefault("batch.out_dir", defaultOutDir)
	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", "pdf-extract/"+version)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-extract"))
		}
	}

	viper.SetEnvPrefix("PDF_EXTRACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// mustBind binds a viper key to a flag. BindPFlag fails only for a nil
// flag, which is a programming error.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// newLogger returns a JSON logger at warn level, or a human-readable
// development logger at debug level when verbose is set. Both write to
// stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// extractConfig assembles the single-document settings from flags,
// environment, config file, and defaults.
func extractConfig() types.ExtractConfig {
	return types.ExtractConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("http.timeout"),
			UserAgent: viper.GetString("http.user_agent"),
		},
		Input:          viper.GetString("extract.input"),
		Output:         viper.GetString("extract.output"),
		Providers:      viper.GetStringSlice("providers"),
		ErrorAsContent: viper.GetBool("extract.error_as_content"),
		Validate:       viper.GetBool("extract.validate"),
		Catalog:        viper.GetString("catalog"),
	}
}

// batchConfig assembles the batch settings.
func batchConfig() types.BatchConfig {
	return types.BatchConfig{
		ExtractConfig: extractConfig(),
		Dir:           viper.GetString("batch.dir"),
		OutDir:        viper.GetString("batch.out_dir"),
		Force:         viper.GetBool("batch.force"),
		Report:        viper.GetString("batch.report"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
