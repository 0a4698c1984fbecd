// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider reports a fixed availability and never opens anything.
type fakeProvider struct {
	name      string
	available bool
}

func (f fakeProvider) Name() string    { return f.name }
func (f fakeProvider) Available() bool { return f.available }
func (f fakeProvider) Open(string) (Document, error) {
	return nil, errors.New("fake provider cannot open files")
}

func fakeRegistry(avail map[string]bool) []factory {
	var reg []factory
	for _, name := range []string{"primary", "secondary", "tertiary"} {
		p := fakeProvider{name: name, available: avail[name]}
		reg = append(reg, factory{name: name, new: func() Provider { return p }})
	}
	return reg
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		avail    map[string]bool
		names    []string
		wantName string
		wantErr  error
	}{
		{
			name:     "primary available",
			avail:    map[string]bool{"primary": true, "secondary": true},
			wantName: "primary",
		},
		{
			name:     "falls back to secondary",
			avail:    map[string]bool{"secondary": true},
			wantName: "secondary",
		},
		{
			name:     "falls back to last",
			avail:    map[string]bool{"tertiary": true},
			wantName: "tertiary",
		},
		{
			name:    "none available",
			avail:   map[string]bool{},
			wantErr: ErrNoProvider,
		},
		{
			name:     "explicit order overrides rank",
			avail:    map[string]bool{"primary": true, "tertiary": true},
			names:    []string{"tertiary", "primary"},
			wantName: "tertiary",
		},
		{
			name:    "explicit list restricts candidates",
			avail:   map[string]bool{"primary": true},
			names:   []string{"secondary"},
			wantErr: ErrNoProvider,
		},
		{
			name:     "names are case and space insensitive",
			avail:    map[string]bool{"secondary": true},
			names:    []string{" Secondary "},
			wantName: "secondary",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := resolve(tt.names, fakeRegistry(tt.avail))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestResolve_UnknownName(t *testing.T) {
	_, err := resolve([]string{"pypdf"}, fakeRegistry(map[string]bool{"primary": true}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoProvider)
	assert.Contains(t, err.Error(), `unknown provider "pypdf"`)
	assert.Contains(t, err.Error(), "primary, secondary, tertiary")
}

func TestResolve_DefaultPrefersLedongthuc(t *testing.T) {
	p, err := Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, NameLedongthuc, p.Name())
}

func TestDefaultOrder(t *testing.T) {
	assert.Equal(t, []string{NameLedongthuc, NameDslipak, NameRSC, NamePdftotext}, DefaultOrder())

	all := All()
	require.Len(t, all, 4)
	for i, p := range all {
		assert.Equal(t, DefaultOrder()[i], p.Name())
	}
}
