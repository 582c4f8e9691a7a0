package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/growthkit/linkedin-assistant/internal/assistant"
	"github.com/growthkit/linkedin-assistant/internal/backend"
	"github.com/growthkit/linkedin-assistant/internal/config"
	"github.com/growthkit/linkedin-assistant/internal/generator"
	"github.com/growthkit/linkedin-assistant/internal/learning"
	"github.com/growthkit/linkedin-assistant/internal/logging"
	"github.com/growthkit/linkedin-assistant/internal/search"
	"github.com/growthkit/linkedin-assistant/internal/settings"
	"github.com/growthkit/linkedin-assistant/internal/storage"
)

// app holds everything one command invocation needs. It is built once per
// command and passed down; nothing here is global.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	kv      storage.KV
	store   *settings.Store
	history *storage.SQLiteStore
	tracker *learning.Tracker
	bandit  *learning.EpsilonGreedy
	svc     *assistant.Service
}

// openApp loads the config and wires storage, backend, search and learning.
func openApp(ctx context.Context, opts *rootOptions) (a *app, err error) {
	cfg, err := config.LoadOrCreate(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, &config.InvalidConfigError{
			Path:    opts.configPath,
			Message: err.Error(),
			Hint:    "Run 'linkedin-assistant config show' to inspect the effective values",
		}
	}

	logger, err := logging.New(logging.Verbose(cfg.Logging.Level, opts.verbose), cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	a = &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	storagePath, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	a.kv, err = storage.Open(ctx, cfg.Storage, storagePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a.store, err = settings.Open(ctx, a.kv, settings.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	historyPath, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	a.history = storage.NewSQLiteStore(historyPath, logger)
	a.tracker = learning.NewTracker(a.history, logger)
	a.bandit = learning.NewEpsilonGreedy()
	a.bandit.SetEpsilon(cfg.Learning.Epsilon)

	gen, err := generator.New(ctx, cfg.Generator)
	if err != nil {
		return nil, fmt.Errorf("failed to configure generator: %w", err)
	}

	be, err := backend.New(cfg.Backend, a.store.APIKey, gen, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure backend: %w", err)
	}

	index, err := search.NewIndexer(logger)
	if err != nil {
		return nil, err
	}

	a.svc, err = assistant.New(assistant.Deps{
		Store:   a.store,
		Backend: be,
		Index:   index,
		Tracker: a.tracker,
		History: a.history,
		Bandit:  a.bandit,
		Logger:  logger,
	})
	if err != nil {
		index.Close()
		return nil, err
	}

	logger.Debug("application ready",
		zap.String("backend", cfg.Backend.Mode),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("history", a.history.Enabled()),
	)
	return a, nil
}

// Close flushes the tracker and releases storage in dependency order.
func (a *app) Close() error {
	var errs []error
	if a.svc != nil {
		errs = append(errs, a.svc.Close())
	} else if a.tracker != nil {
		a.tracker.Stop()
	}
	if a.history != nil {
		errs = append(errs, a.history.Close())
	}
	if a.kv != nil {
		errs = append(errs, a.kv.Close())
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return errors.Join(errs...)
}
