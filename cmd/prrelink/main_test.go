package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

func TestBuild_Defaults(t *testing.T) {
	home := t.TempDir()

	a, err := build(home)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.services.Relink)
	assert.NotNil(t, a.services.History)
	assert.NotNil(t, a.services.Settings)
	assert.NotNil(t, a.services.Manifests)
	require.NotNil(t, a.store, "history is on by default")
	assert.FileExists(t, filepath.Join(home, "data", "history.db"))

	runs, err := a.services.History.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestBuild_HistoryDisabled(t *testing.T) {
	home := t.TempDir()
	config := "[history]\nenabled = false\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(config), 0600))

	a, err := build(home)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.store)
	_, err = a.services.History.List(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestBuild_RelinkRecordsRun(t *testing.T) {
	home := t.TempDir()
	src := filepath.Join(home, "edit.xml")
	project := `<?xml version="1.0" encoding="UTF-8"?>
<xmeml><clip><file><pathurl>file:///old/a.mov</pathurl></file></clip></xmeml>`
	require.NoError(t, os.WriteFile(src, []byte(project), 0600))

	a, err := build(home)
	require.NoError(t, err)
	defer a.Close()

	out := a.services.Relink.Relink(context.Background(), domain.RelinkRequest{
		SourcePath: src,
		DryRun:     true,
		Relocations: []domain.RelocationEntry{
			{OriginalPath: "/old/a.mov", DestinationPath: "/new/a.mov"},
		},
	})
	require.True(t, out.Success, "errors: %v", out.Errors)
	assert.Equal(t, 1, out.UpdatedCount)

	runs, err := a.services.History.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, src, runs[0].SourcePath)
}
