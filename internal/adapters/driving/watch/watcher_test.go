package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prrelink/internal/adapters/driven/manifest"
	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
)

type recordingRelink struct {
	mu   sync.Mutex
	reqs []domain.RelinkRequest
}

func (r *recordingRelink) Relink(_ context.Context, req domain.RelinkRequest) *domain.RelinkOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	return &domain.RelinkOutcome{Success: true, Stage: domain.StageDone}
}

func (r *recordingRelink) Inspect(_ context.Context, _ string, _ []domain.RelocationEntry) (*driving.InspectReport, error) {
	return nil, errors.New("not used")
}

func (r *recordingRelink) requests() []domain.RelinkRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.RelinkRequest(nil), r.reqs...)
}

type failingLoader struct{}

func (failingLoader) Load(_ context.Context, _ string) ([]domain.RelocationEntry, error) {
	return nil, domain.ErrInvalidInput
}

func writeManifest(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func testConfig(manifestPath string) Config {
	return Config{
		ManifestPath: manifestPath,
		Request:      domain.RelinkRequest{SourcePath: "/projects/edit.prproj"},
		Debounce:     20 * time.Millisecond,
	}
}

func TestNew_Validation(t *testing.T) {
	relink := &recordingRelink{}

	_, err := New(nil, manifest.NewLoader(), testConfig("m.json"))
	assert.Error(t, err)

	_, err = New(relink, nil, testConfig("m.json"))
	assert.Error(t, err)

	_, err = New(relink, manifest.NewLoader(), Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefaultConfig(t *testing.T) {
	req := domain.RelinkRequest{SourcePath: "a.prproj"}
	cfg := DefaultConfig("m.json", req)

	assert.Equal(t, "m.json", cfg.ManifestPath)
	assert.Equal(t, req, cfg.Request)
	assert.Positive(t, cfg.Debounce)
	assert.Positive(t, cfg.RunsPerSecond)
	assert.Equal(t, 1, cfg.Burst)
}

func TestRunOnce_UsesManifestEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "copied.json")
	writeManifest(t, path, `[{"original_path":"/old/a.mov","destination_path":"/new/a.mov"}]`)

	relink := &recordingRelink{}
	w, err := New(relink, manifest.NewLoader(), testConfig(path))
	require.NoError(t, err)

	var called bool
	w.OnRun(func(req domain.RelinkRequest, outcome *domain.RelinkOutcome) {
		called = true
		assert.True(t, outcome.Success)
		assert.Len(t, req.Relocations, 1)
	})

	outcome, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.True(t, called)

	reqs := relink.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/projects/edit.prproj", reqs[0].SourcePath)
	assert.Equal(t, []domain.RelocationEntry{
		{OriginalPath: "/old/a.mov", DestinationPath: "/new/a.mov"},
	}, reqs[0].Relocations)
}

func TestRunOnce_LoaderErrorSkipsRelink(t *testing.T) {
	relink := &recordingRelink{}
	w, err := New(relink, failingLoader{}, testConfig("m.json"))
	require.NoError(t, err)

	_, err = w.RunOnce(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, relink.requests())
}

func TestRun_RerunsOnManifestChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "copied.json")
	writeManifest(t, path, `[{"original_path":"/old/a.mov","destination_path":"/new/a.mov"}]`)

	relink := &recordingRelink{}
	w, err := New(relink, manifest.NewLoader(), testConfig(path))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return len(relink.requests()) == 1 },
		2*time.Second, 10*time.Millisecond, "initial run")

	writeManifest(t, path, `[
		{"original_path":"/old/a.mov","destination_path":"/new/a.mov"},
		{"original_path":"/old/b.wav","destination_path":"/new/b.wav"}
	]`)

	require.Eventually(t, func() bool {
		reqs := relink.requests()
		return len(reqs) >= 2 && len(reqs[len(reqs)-1].Relocations) == 2
	}, 2*time.Second, 10*time.Millisecond, "rerun after change")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "copied.json")
	writeManifest(t, path, `[]`)

	relink := &recordingRelink{}
	w, err := New(relink, manifest.NewLoader(), testConfig(path))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.Eventually(t, func() bool { return len(relink.requests()) == 1 },
		2*time.Second, 10*time.Millisecond)

	writeManifest(t, filepath.Join(dir, "edit.prproj"), "<PremiereData/>")
	time.Sleep(150 * time.Millisecond)

	assert.Len(t, relink.requests(), 1)
}

func TestRun_MissingDirectory(t *testing.T) {
	relink := &recordingRelink{}
	w, err := New(relink, manifest.NewLoader(), testConfig(filepath.Join(t.TempDir(), "nope", "m.json")))
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, relink.requests())
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want bool
	}{
		{fsnotify.Write, true},
		{fsnotify.Create, true},
		{fsnotify.Create | fsnotify.Chmod, true},
		{fsnotify.Remove, false},
		{fsnotify.Rename, false},
		{fsnotify.Chmod, false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.op))
		})
	}
}
