package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paisebook/paisebook/internal/domain/categorization"
	"github.com/paisebook/paisebook/internal/domain/currency"
	"github.com/paisebook/paisebook/internal/domain/ledger"
	importservice "github.com/paisebook/paisebook/internal/domain/statement/service"
	"github.com/paisebook/paisebook/pkg/archive"
	"github.com/paisebook/paisebook/pkg/config"
	"github.com/paisebook/paisebook/pkg/cron"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *pgxpool.Pool

	RateCache   currency.RateCache
	Converter   *currency.Service
	Categorizer *categorization.Service
	Ledger      ledger.Ledger
	Importer    *importservice.Service
	Archive     *archive.Archive
	Scheduler   *cron.Scheduler
}

// InitDependencies initializes all application dependencies. The database
// and ledger are only brought up when commits are requested; parse-only
// runs stay offline apart from rate lookups.
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger, withLedger bool) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	cache, err := currency.NewFileCache(cfg.Rates.CachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init rate cache: %w", err)
	}
	deps.RateCache = cache

	provider := currency.NewHTTPProvider(cfg.Rates.ProviderURL, nil)
	deps.Converter = currency.NewService(cfg.Ledger.BaseCurrency, provider, cache, logger)

	deps.Categorizer = categorization.NewDefaultService(logger)

	if withLedger {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect database: %w", err)
		}
		deps.DB = pool
		deps.Ledger = ledger.NewPostgresLedger(pool)
	}

	deps.Archive, err = archive.New(cfg.Archive.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to init statement archive: %w", err)
	}

	deps.Importer = importservice.NewService(deps.Converter, deps.Categorizer, deps.Ledger, logger)
	deps.Scheduler = cron.NewScheduler(deps.Converter, logger)

	return deps, nil
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
