// Command importer ingests a bank-statement export and prints (or commits)
// the canonical transactions it produces.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	importservice "github.com/paisebook/paisebook/internal/domain/statement/service"
	"github.com/paisebook/paisebook/pkg/config"
	"github.com/paisebook/paisebook/pkg/money"
)

func main() {
	commit := flag.Bool("commit", false, "commit the batch to the ledger after parsing")
	warm := flag.Bool("warm", false, "refresh the exchange-rate cache before importing")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: importer [-commit] <statement.csv|statement.xlsx>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Observability.MetricsEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Observability.MetricsPort)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				logger.Warn("metrics listener stopped", slog.Any("error", err))
			}
		}()
	}

	ctx := context.Background()
	deps, err := InitDependencies(ctx, cfg, logger, *commit)
	if err != nil {
		logger.Error("failed to init dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer deps.Close()

	if *warm {
		if err := deps.Scheduler.RefreshNow(); err != nil {
			logger.Warn("rate refresh failed, continuing with cached rates", slog.Any("error", err))
		}
	}

	result, err := runImport(deps, path)
	if err != nil {
		logger.Error("import failed", slog.String("file", path), slog.Any("error", err))
		os.Exit(1)
	}

	for _, tx := range result.Transactions {
		fmt.Printf("%s  %-8s %12s  %s\n", tx.Date, tx.Type, money.NewFromDecimal(tx.Amount, tx.Currency).Display(), tx.Payee)
	}
	for _, skip := range result.Skipped {
		logger.Warn("row skipped", slog.Int("line", skip.Line), slog.String("reason", skip.Reason))
	}

	if *commit {
		committed, skipped, err := deps.Importer.CommitBatch(ctx, result.Transactions)
		if err != nil {
			logger.Error("commit failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("batch committed",
			slog.Int("committed", committed),
			slog.Int("conversion_skipped", len(skipped)),
		)

		f, err := os.Open(path)
		if err == nil {
			rec, archiveErr := deps.Archive.Store(path, string(result.Dialect), f)
			f.Close()
			if archiveErr != nil {
				logger.Warn("failed to archive statement", slog.Any("error", archiveErr))
			} else {
				logger.Info("statement archived", slog.String("archive_id", rec.ID.String()))
			}
		}
	}
}

func runImport(deps *Dependencies, path string) (*importservice.ImportResult, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return deps.Importer.ImportWorkbook(f)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return deps.Importer.ImportText(string(data))
}
