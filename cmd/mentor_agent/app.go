package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andriy/career-mentor/internal/coach"
	"github.com/andriy/career-mentor/internal/config"
	"github.com/andriy/career-mentor/internal/history"
	"github.com/andriy/career-mentor/internal/llm"
	"github.com/andriy/career-mentor/internal/observability"
	"github.com/andriy/career-mentor/internal/profile"
	"github.com/andriy/career-mentor/internal/session"
	"github.com/andriy/career-mentor/internal/store"
	"github.com/andriy/career-mentor/internal/types"
)

// app wires the shared dependencies every command needs: configuration,
// logging, record storage, the ledger, and the backend client.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	records  store.RecordStore
	ledger   *history.Ledger
	profiles *profile.Store
	client   llm.Client
	coach    *coach.Coach
	sessions *session.Manager
	printer  *observability.Printer

	closers []func()
}

// resolveConfig merges CLI flags over the config file over environment
// variables. Flags always win.
func resolveConfig() (config.Config, error) {
	cfg := config.Config{
		APIKey:      flagAPIKey,
		DataDir:     flagDataDir,
		DatabaseURL: flagDBURL,
		Verbose:     flagVerbose,
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if flagConfig != "" {
		fileCfg, err := config.LoadConfig(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		if err := fileCfg.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
		if fileCfg.Verbose {
			cfg.Verbose = true
		}
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DataDir:     os.Getenv("MENTOR_DATA_DIR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	})

	// An explicit flag pins the storage backend: a database URL inherited
	// from env or file never overrides a --data-dir flag, and vice versa.
	// Both flags at once fails Validate above.
	if flagDataDir != "" {
		cfg.DatabaseURL = ""
	}
	if flagDBURL != "" {
		cfg.DataDir = ""
	}
	if cfg.DataDir == "" && cfg.DatabaseURL == "" {
		cfg.DataDir = config.DefaultDataDir()
	}

	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// newApp builds the shared dependency graph. Commands that never touch the
// backend may pass needClient=false to skip the API key requirement.
func newApp(ctx context.Context, needClient bool) (*app, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a := &app{cfg: cfg, log: log, printer: observability.NewPrinter(os.Stdout)}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	if cfg.DatabaseURL != "" {
		pg, err := store.ConnectPG(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		a.records = pg
	} else {
		fileStore, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.records = fileStore
	}

	a.ledger, err = history.NewLedger(ctx, a.records, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.profiles = profile.NewStore(a.records, a.ledger, log)

	if needClient {
		if cfg.APIKey == "" {
			a.Close()
			return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
		}
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.client = client
		a.coach = coach.New(client, log)
		a.sessions = session.NewManager(client, log)
	}

	return a, nil
}

// reportDegraded logs a degraded generation. The fallback text has already
// been printed and archived, so the command itself still succeeds.
func (a *app) reportDegraded(op string, err error) {
	if err != nil {
		a.log.Warn("generation degraded", zap.String("op", op), zap.Error(err))
	}
}

// Close releases resources in reverse acquisition order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// requireProfile loads the onboarded profile or explains how to get one.
func (a *app) requireProfile(ctx context.Context) (*types.Profile, error) {
	p, err := a.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Onboarded {
		return nil, fmt.Errorf("no profile found: run 'mentor_agent onboard' first")
	}
	return p, nil
}
