package cli

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

func historyRuns() []domain.RelinkRun {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []domain.RelinkRun{
		{
			ID:         "7b0c3f4e-1111-2222-3333-444455556666",
			SourcePath: "/p/edit.prproj",
			StartedAt:  start.Add(time.Hour),
			FinishedAt: start.Add(time.Hour + 120*time.Millisecond),
			Outcome: domain.RelinkOutcome{
				Success:        true,
				Stage:          domain.StageDone,
				ReferenceCount: 4,
				UpdatedCount:   3,
				UnmatchedCount: 1,
				Changes: []domain.PathChange{{
					Element: "Media",
					Locator: domain.AttributeLocator("pathurl"),
					OldPath: "/old/a.mov",
					NewPath: "/new/a.mov",
				}},
			},
		},
		{
			ID:         "9a1d0000-aaaa-bbbb-cccc-ddddeeeeffff",
			SourcePath: "/p/missing.prproj",
			DryRun:     true,
			StartedAt:  start,
			FinishedAt: start,
			Outcome: domain.RelinkOutcome{
				Stage:  domain.StageReading,
				Errors: []string{"reading: project file /p/missing.prproj: not found"},
			},
		},
	}
}

func TestHistoryCmd_List(t *testing.T) {
	withServices(t, Services{History: &mockHistoryService{runs: historyRuns()}})

	out, err := executeCommand(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "7b0c3f4e")
	assert.NotContains(t, out, "7b0c3f4e-1111")
	assert.Contains(t, out, "✓ done")
	assert.Contains(t, out, "3/4 updated")
	assert.Contains(t, out, "/p/edit.prproj")
	assert.Contains(t, out, "✗ reading")
	assert.Contains(t, out, "/p/missing.prproj")
}

func TestHistoryCmd_Limit(t *testing.T) {
	withServices(t, Services{History: &mockHistoryService{runs: historyRuns()}})

	out, err := executeCommand(t, "", "history", "-n", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "7b0c3f4e")
	assert.NotContains(t, out, "9a1d0000")
}

func TestHistoryCmd_Empty(t *testing.T) {
	withServices(t, Services{History: &mockHistoryService{}})

	out, err := executeCommand(t, "", "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestHistoryCmd_Show(t *testing.T) {
	withServices(t, Services{History: &mockHistoryService{runs: historyRuns()}})

	out, err := executeCommand(t, "", "history", "7b0c3f4e-1111-2222-3333-444455556666")

	require.NoError(t, err)
	assert.Contains(t, out, "Run 7b0c3f4e-1111-2222-3333-444455556666")
	assert.Contains(t, out, "Duration: 120ms")
	assert.Contains(t, out, "Updated: 3")
	assert.Contains(t, out, "Media @pathurl")
	assert.Contains(t, out, "-> /new/a.mov")
}

func TestHistoryCmd_ShowByPrefix(t *testing.T) {
	withServices(t, Services{History: &mockHistoryService{runs: historyRuns()}})

	out, err := executeCommand(t, "", "history", "9a1d")

	require.NoError(t, err)
	assert.Contains(t, out, "Run 9a1d0000-aaaa-bbbb-cccc-ddddeeeeffff")
	assert.Contains(t, out, "Mode: dry run")
	assert.Contains(t, out, "error: reading: project file /p/missing.prproj: not found")
}

func TestHistoryCmd_ShowErrors(t *testing.T) {
	t.Run("unknown run", func(t *testing.T) {
		withServices(t, Services{History: &mockHistoryService{runs: historyRuns()}})

		_, err := executeCommand(t, "", "history", "ffff")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		runs := historyRuns()
		runs[1].ID = "7b0c9999-0000-0000-0000-000000000000"
		withServices(t, Services{History: &mockHistoryService{runs: runs}})

		_, err := executeCommand(t, "", "history", "7b0c")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestHistoryCmd_Disabled(t *testing.T) {
	disabled := &mockHistoryService{err: fmt.Errorf("run history: %w", domain.ErrNotImplemented)}
	withServices(t, Services{History: disabled})

	_, err := executeCommand(t, "", "history")
	assert.ErrorIs(t, err, errHistoryDisabled)

	_, err = executeCommand(t, "", "history", "abc")
	assert.ErrorIs(t, err, errHistoryDisabled)
}
