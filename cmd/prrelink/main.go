// Command prrelink rewrites media paths inside NLE project containers.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/prrelink/internal/adapters/driven/config/file"
	"github.com/custodia-labs/prrelink/internal/adapters/driven/container"
	"github.com/custodia-labs/prrelink/internal/adapters/driven/filestore"
	"github.com/custodia-labs/prrelink/internal/adapters/driven/manifest"
	"github.com/custodia-labs/prrelink/internal/adapters/driven/metrics"
	"github.com/custodia-labs/prrelink/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/prrelink/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/prrelink/internal/adapters/driving/cli"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
	"github.com/custodia-labs/prrelink/internal/core/services"
	"github.com/custodia-labs/prrelink/internal/logger"
)

// Set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	app, err := build("")
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	defer app.Close()

	cli.SetVersion(version)
	cli.SetServices(app.services)

	if err := cli.Execute(ctx); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}

// app holds the wired services and whatever needs closing on exit.
type app struct {
	services cli.Services
	store    *sqlite.Store
}

func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		logger.Warn("closing history database: %v", err)
	}
}

// build wires every adapter from the persisted settings. home overrides
// the application directory; empty means file.HomeDir.
func build(home string) (*app, error) {
	if home == "" {
		dir, err := file.HomeDir()
		if err != nil {
			return nil, err
		}
		home = dir
	}

	var configStore driven.ConfigStore
	fileConfig, err := file.NewConfigStore(home)
	if err != nil {
		logger.Warn("config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore(nil)
	} else {
		configStore = fileConfig
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	a := &app{}

	var runStore driven.RunStore
	if settings.History.Enabled {
		store, err := sqlite.NewStore(filepath.Join(home, "data"))
		if err != nil {
			logger.Warn("history database unavailable, keeping runs in memory: %v", err)
			runStore = memory.NewRunStore()
		} else {
			a.store = store
			runStore = store.RunStore()
		}
	}

	codec := container.NewCodec(container.ResolveStrategy(settings.Relink.Compression))
	files := filestore.NewStore(settings.Relink.Backup)

	relinkService := services.NewRelinkService(codec, files, runStore, settings.Relink.CaseMode)
	if path := settings.Metrics.TextfilePath; path != "" {
		relinkService.AddObserver(metrics.NewObserver(path))
	}

	a.services = cli.Services{
		Relink:    relinkService,
		History:   services.NewHistoryService(runStore),
		Settings:  settingsService,
		Manifests: manifest.NewLoader(),
	}
	return a, nil
}
