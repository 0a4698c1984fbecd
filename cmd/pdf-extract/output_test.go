// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-extract/internal/catalog"
	"github.com/pdiddy/pdf-extract/internal/inspect"
	"github.com/pdiddy/pdf-extract/internal/pdftest"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

func TestWriteStructured(t *testing.T) {
	v := map[string]int{"pages": 3}

	var yamlOut bytes.Buffer
	require.NoError(t, writeStructured(&yamlOut, v, false))
	assert.Equal(t, "pages: 3\n", yamlOut.String())

	var jsonOut bytes.Buffer
	require.NoError(t, writeStructured(&jsonOut, v, true))
	assert.JSONEq(t, `{"pages": 3}`, jsonOut.String())
}

func TestRunInspect(t *testing.T) {
	dir := t.TempDir()
	pdfPath := pdftest.Write(t, dir, "sample.pdf", "One", "Two")

	var out bytes.Buffer
	inspectCmd.SetOut(&out)
	t.Cleanup(func() { inspectCmd.SetOut(nil) })
	require.NoError(t, inspectCmd.Flags().Set("json", "true"))
	t.Cleanup(func() { _ = inspectCmd.Flags().Set("json", "false") })

	require.NoError(t, runInspect(inspectCmd, []string{pdfPath}))

	var infos []inspect.Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, 2, infos[0].Pages)
	assert.True(t, infos[0].Valid)
}

func TestRunInspect_MissingFile(t *testing.T) {
	err := runInspect(inspectCmd, []string{filepath.Join(t.TempDir(), "missing.pdf")})
	assert.Error(t, err)
}

func TestRunHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	cat, err := catalog.Open(path)
	require.NoError(t, err)
	require.NoError(t, cat.Record(context.Background(), types.Record{
		Source:   "/data/a.pdf",
		Provider: "ledongthuc",
		Pages:    4,
		Output:   "text/a.txt",
		Status:   types.ExtractionDone,
	}))
	require.NoError(t, cat.Close())

	viper.Set("catalog", path)
	t.Cleanup(func() { viper.Set("catalog", "") })

	var out bytes.Buffer
	historyCmd.SetOut(&out)
	historyCmd.SetContext(context.Background())
	t.Cleanup(func() { historyCmd.SetOut(nil) })

	require.NoError(t, runHistory(historyCmd, nil))
	assert.Contains(t, out.String(), "/data/a.pdf -> text/a.txt")
	assert.Contains(t, out.String(), "4 pages")
}

func TestRunHistory_NoCatalog(t *testing.T) {
	viper.Set("catalog", "")
	err := runHistory(historyCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog configured")
}
