package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

func TestRelinkCmd_Use(t *testing.T) {
	assert.Equal(t, "relink SOURCE [DESTINATION]", relinkCmd.Use)
}

func TestRelinkCmd_Flags(t *testing.T) {
	for _, name := range []string{"manifest", "map", "dry-run", "yes", "changes"} {
		assert.NotNil(t, relinkCmd.Flags().Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "m", relinkCmd.Flags().Lookup("map").Shorthand)
	assert.Equal(t, "f", relinkCmd.Flags().Lookup("manifest").Shorthand)
}

func TestRelinkCmd_RequiresSource(t *testing.T) {
	withServices(t, Services{Relink: &mockRelinkService{}})

	_, err := executeCommand(t, "", "relink")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts between 1 and 2 arg(s)")
}

func TestRelinkCmd_RequiresRelocations(t *testing.T) {
	mock := &mockRelinkService{}
	withServices(t, Services{Relink: mock})

	_, err := executeCommand(t, "", "relink", "/p/edit.prproj")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, mock.requests)
}

func TestRelinkCmd_MapPairs(t *testing.T) {
	mock := &mockRelinkService{
		outcome: &domain.RelinkOutcome{
			Success:        true,
			Stage:          domain.StageDone,
			ReferenceCount: 3,
			UpdatedCount:   2,
			UnmatchedCount: 1,
		},
	}
	withServices(t, Services{Relink: mock})

	out, err := executeCommand(t, "",
		"relink", "/p/edit.prproj", "/p/out.prproj",
		"--map", "/Volumes/Old/a.mov=/Volumes/New/a.mov",
		"-m", "/Volumes/Old/b.wav=/Volumes/New/b.wav",
	)

	require.NoError(t, err)
	require.Len(t, mock.requests, 1)
	req := mock.requests[0]
	assert.Equal(t, "/p/edit.prproj", req.SourcePath)
	assert.Equal(t, "/p/out.prproj", req.DestinationPath)
	assert.False(t, req.DryRun)
	assert.Equal(t, []domain.RelocationEntry{
		{OriginalPath: "/Volumes/Old/a.mov", DestinationPath: "/Volumes/New/a.mov"},
		{OriginalPath: "/Volumes/Old/b.wav", DestinationPath: "/Volumes/New/b.wav"},
	}, req.Relocations)

	assert.Contains(t, out, "Relink /p/edit.prproj")
	assert.Contains(t, out, "Output: /p/out.prproj")
	assert.Contains(t, out, "✓ done")
	assert.Contains(t, out, "References: 3")
	assert.Contains(t, out, "Updated: 2")
	assert.Contains(t, out, "Unmatched: 1")
}

func TestRelinkCmd_ManifestThenMap(t *testing.T) {
	mock := &mockRelinkService{}
	loader := &mockManifestLoader{entries: []domain.RelocationEntry{
		{OriginalPath: "/old/a.mov", DestinationPath: "/copy1/a.mov"},
	}}
	withServices(t, Services{Relink: mock, Manifests: loader})

	_, err := executeCommand(t, "",
		"relink", "/p/edit.prproj", "--dry-run",
		"--manifest", "copied.json",
		"--map", "/old/a.mov=/copy2/a.mov",
	)

	require.NoError(t, err)
	assert.Equal(t, "copied.json", loader.lastPath)
	require.Len(t, mock.requests, 1)
	assert.True(t, mock.requests[0].DryRun)
	assert.Equal(t, []domain.RelocationEntry{
		{OriginalPath: "/old/a.mov", DestinationPath: "/copy1/a.mov"},
		{OriginalPath: "/old/a.mov", DestinationPath: "/copy2/a.mov"},
	}, mock.requests[0].Relocations, "map pairs come last so they win")
}

func TestRelinkCmd_ManifestErrors(t *testing.T) {
	t.Run("loader failure", func(t *testing.T) {
		mock := &mockRelinkService{}
		loader := &mockManifestLoader{err: domain.ErrNotFound}
		withServices(t, Services{Relink: mock, Manifests: loader})

		_, err := executeCommand(t, "", "relink", "/p/edit.prproj", "--manifest", "missing.json")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, mock.requests)
	})

	t.Run("no loader configured", func(t *testing.T) {
		withServices(t, Services{Relink: &mockRelinkService{}})

		_, err := executeCommand(t, "", "relink", "/p/edit.prproj", "--manifest", "m.json")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "manifest loader not configured")
	})

	t.Run("bad map pair", func(t *testing.T) {
		mock := &mockRelinkService{}
		withServices(t, Services{Relink: mock})

		_, err := executeCommand(t, "", "relink", "/p/edit.prproj", "--map", "no-separator")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, mock.requests)
	})
}

func TestRelinkCmd_FailedOutcome(t *testing.T) {
	mock := &mockRelinkService{
		outcome: &domain.RelinkOutcome{
			Stage:  domain.StageValidating,
			Errors: []string{"validating: invalid path format at <Media @pathurl> (node 3): contains XML characters"},
		},
	}
	withServices(t, Services{Relink: mock})

	out, err := executeCommand(t, "", "relink", "/p/edit.prproj", "--map", "/a=/b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "relink failed at validating stage")
	assert.Contains(t, out, "✗ failed at validating")
	assert.Contains(t, out, "error: validating: invalid path format")
}

func TestRelinkCmd_NotesAndChanges(t *testing.T) {
	mock := &mockRelinkService{
		outcome: &domain.RelinkOutcome{
			Success:        true,
			Stage:          domain.StageDone,
			ReferenceCount: 1,
			UpdatedCount:   1,
			MalformedCount: 1,
			Notes:          []string{domain.NoteDryRun},
			Changes: []domain.PathChange{{
				Element: "Media",
				Locator: domain.AttributeLocator("pathurl"),
				OldPath: "/old/a.mov",
				NewPath: "/new/a.mov",
			}},
		},
	}
	withServices(t, Services{Relink: mock})

	out, err := executeCommand(t, "", "relink", "/p/edit.prproj", "--map", "/a=/b", "--dry-run", "--changes")

	require.NoError(t, err)
	assert.Contains(t, out, "note: dry run: output not written")
	assert.Contains(t, out, "Malformed: 1")
	assert.Contains(t, out, "Changes")
	assert.Contains(t, out, "Media @pathurl")
	assert.Contains(t, out, "/old/a.mov")
	assert.Contains(t, out, "-> /new/a.mov")
}

func TestRelinkCmd_OverwritePrompt(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "edit.prproj")
	require.NoError(t, os.WriteFile(project, []byte("x"), 0644))

	original := stdinIsTerminal
	stdinIsTerminal = func() bool { return true }
	t.Cleanup(func() { stdinIsTerminal = original })

	t.Run("declined", func(t *testing.T) {
		mock := &mockRelinkService{}
		withServices(t, Services{Relink: mock})

		out, err := executeCommand(t, "n\n", "relink", project, "--map", "/a=/b")

		require.NoError(t, err)
		assert.Contains(t, out, "Overwrite "+project+"? [y/N]")
		assert.Contains(t, out, "Aborted.")
		assert.Empty(t, mock.requests)
	})

	t.Run("accepted", func(t *testing.T) {
		mock := &mockRelinkService{}
		withServices(t, Services{Relink: mock})

		_, err := executeCommand(t, "y\n", "relink", project, "--map", "/a=/b")

		require.NoError(t, err)
		assert.Len(t, mock.requests, 1)
	})

	t.Run("yes flag skips prompt", func(t *testing.T) {
		mock := &mockRelinkService{}
		withServices(t, Services{Relink: mock})

		out, err := executeCommand(t, "", "relink", project, "--map", "/a=/b", "--yes")

		require.NoError(t, err)
		assert.NotContains(t, out, "[y/N]")
		assert.Len(t, mock.requests, 1)
	})

	t.Run("new destination is not prompted", func(t *testing.T) {
		mock := &mockRelinkService{}
		withServices(t, Services{Relink: mock})

		out, err := executeCommand(t, "", "relink", project, filepath.Join(dir, "new.prproj"), "--map", "/a=/b")

		require.NoError(t, err)
		assert.NotContains(t, out, "[y/N]")
		assert.Len(t, mock.requests, 1)
	})
}

func TestRelinkCmd_NoTerminalDoesNotPrompt(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "edit.prproj")
	require.NoError(t, os.WriteFile(project, []byte("x"), 0644))

	original := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdinIsTerminal = original })

	mock := &mockRelinkService{}
	withServices(t, Services{Relink: mock})

	out, err := executeCommand(t, "", "relink", project, "--map", "/a=/b")

	require.NoError(t, err)
	assert.NotContains(t, out, "Overwrite")
	assert.Len(t, mock.requests, 1)
}

func TestCollectRelocations_NothingGiven(t *testing.T) {
	_, given, err := collectRelocations(relinkCmd)

	require.NoError(t, err)
	assert.False(t, given)
}
