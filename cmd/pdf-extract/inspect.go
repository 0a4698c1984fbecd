// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-extract/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [pdfs...]",
	Short: "Report page count and structural validity of PDFs",
	Long: `Inspect validates each PDF in relaxed mode and counts its pages. Results
are printed as YAML, or JSON with --json. Invalid files are reported, not
treated as errors; a missing or unreadable file is an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	infos := make([]inspect.Info, 0, len(args))
	for _, path := range args {
		info, err := inspect.Inspect(path)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return writeStructured(cmd.OutOrStdout(), infos, jsonOutput)
}

// writeStructured prints v as indented JSON or as YAML.
func writeStructured(w io.Writer, v any, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = w.Write(data)
	return err
}
