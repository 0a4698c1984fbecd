// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-extract/internal/catalog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent extraction runs from the catalog",
	Long: `History lists the most recent extraction runs recorded in the SQLite
catalog given by --catalog (or the catalog config key), newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("catalog")
	if path == "" {
		return errors.New("no catalog configured: pass --catalog or set catalog in the config file")
	}

	cat, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer cat.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	recs, err := cat.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeStructured(w, recs, true)
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No extraction runs recorded.")
		return nil
	}
	for _, r := range recs {
		fmt.Fprintf(w, "%s  %-9s %3d pages  %-10s %s -> %s\n",
			r.ExtractedAt.Local().Format(time.DateTime), r.Status, r.Pages, r.Provider, r.Source, r.Output)
		if r.Error != "" {
			fmt.Fprintf(w, "    error: %s\n", r.Error)
		}
	}
	return nil
}
