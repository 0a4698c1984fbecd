// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-extract/internal/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List PDF providers in rank order and show which one is selected",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listProviders(cmd.OutOrStdout(), provider.All(), viper.GetStringSlice("providers"))
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

// listProviders prints one line per provider with its availability, and
// marks the provider that would be selected for the configured order.
func listProviders(w io.Writer, all []provider.Provider, order []string) error {
	selected := ""
	p, err := resolveProvider(order)
	switch {
	case err == nil:
		selected = p.Name()
	case !errors.Is(err, provider.ErrNoProvider):
		return err
	}

	for _, p := range all {
		status := "unavailable"
		if p.Available() {
			status = "available"
		}
		marker := " "
		if p.Name() == selected {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-11s %s\n", marker, p.Name(), status)
	}
	if selected == "" {
		fmt.Fprintln(w, "\nNo PDF library available for the configured order.")
	}
	return nil
}
