// Package service orchestrates the statement import pipeline: raw rows in,
// canonical transactions out, with per-row defects collected as diagnostics
// instead of aborting the batch.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paisebook/paisebook/internal/domain/categorization"
	"github.com/paisebook/paisebook/internal/domain/currency"
	"github.com/paisebook/paisebook/internal/domain/ledger"
	"github.com/paisebook/paisebook/internal/domain/statement/dialect"
	"github.com/paisebook/paisebook/internal/domain/statement/normalizer"
	"github.com/paisebook/paisebook/internal/domain/statement/parser"
)

// RowDiagnostic records why one statement row was skipped. Line is 1-based:
// during import it counts the header, matching what a user sees in their
// export; during commit it is the position within the batch.
type RowDiagnostic struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult is the outcome of one best-effort import: the canonical
// batch in input order plus the rows that fell out along the way.
type ImportResult struct {
	Dialect      dialect.Dialect
	Transactions []*ledger.CanonicalTransaction
	Skipped      []RowDiagnostic
	RowsTotal    int
}

// Service runs the import pipeline and commits its output to the ledger.
type Service struct {
	converter   *currency.Service
	categorizer *categorization.Service
	book        ledger.Ledger
	logger      *slog.Logger
}

// NewService wires the pipeline. The ledger collaborator may be nil when
// only parsing (no commit) is needed.
func NewService(converter *currency.Service, categorizer *categorization.Service, book ledger.Ledger, logger *slog.Logger) *Service {
	return &Service{
		converter:   converter,
		categorizer: categorizer,
		book:        book,
		logger:      logger,
	}
}

// ImportText runs the full pipeline over delimited statement text.
func (s *Service) ImportText(data string) (*ImportResult, error) {
	st, err := parser.ParseText(data)
	if err != nil {
		return nil, err
	}
	return s.importStatement(st)
}

// ImportWorkbook runs the pipeline over an XLSX export.
func (s *Service) ImportWorkbook(r io.Reader) (*ImportResult, error) {
	st, err := parser.ParseWorkbook(r)
	if err != nil {
		return nil, err
	}
	return s.importStatement(st)
}

func (s *Service) importStatement(st *parser.Statement) (*ImportResult, error) {
	d := dialect.Detect(st.Headers)
	mapper := dialect.MapperFor(d)

	result := &ImportResult{
		Dialect:   d,
		RowsTotal: len(st.Rows),
	}

	mapped := mapRows(mapper, st.Rows)

	for i, m := range mapped {
		line := i + 2 // 1-indexed, after the header
		if !m.ok {
			result.Skipped = append(result.Skipped, RowDiagnostic{Line: line, Reason: "unmappable row"})
			continue
		}

		tx, reason := s.assemble(m.raw, d)
		if tx == nil {
			result.Skipped = append(result.Skipped, RowDiagnostic{Line: line, Reason: reason})
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	importsTotal.Inc()
	rowsImported.Add(float64(len(result.Transactions)))
	rowsSkipped.Add(float64(len(result.Skipped)))

	s.logger.Info("statement imported",
		slog.String("dialect", string(d)),
		slog.Int("rows", result.RowsTotal),
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

type mappedRow struct {
	raw dialect.RawTransaction
	ok  bool
}

// mapRows extracts raw fields from every row using a worker pool. Results
// land in an index-addressed slice, so output order always equals input
// order no matter how the workers interleave.
func mapRows(mapper dialect.Mapper, rows [][]string) []mappedRow {
	out := make([]mappedRow, len(rows))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				raw, ok := mapper.Extract(rows[i])
				out[i] = mappedRow{raw: raw, ok: ok}
			}
		}()
	}
	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}

// assemble combines the normalizers into a canonical transaction. Rows
// whose normalized amount is exactly zero are dropped here, after
// normalization: unparseable amount text degrades to zero and then falls
// out through this filter.
func (s *Service) assemble(raw dialect.RawTransaction, d dialect.Dialect) (*ledger.CanonicalTransaction, string) {
	amount := normalizer.NormalizeAmount(raw.AmountText)
	if amount == 0 {
		return nil, "zero amount after normalization"
	}

	txType := deriveType(raw, amount)

	return &ledger.CanonicalTransaction{
		ID:          uuid.New(),
		Date:        normalizer.NormalizeDate(raw.DateText),
		Description: normalizer.CleanDescription(raw.DescriptionText),
		Payee:       normalizer.ExtractPayee(raw.DescriptionText),
		Amount:      decimal.NewFromFloat(math.Abs(amount)),
		Type:        txType,
		Category:    ledger.DefaultCategory,
		Currency:    d.Currency(s.converter.BaseCurrency()),
	}, ""
}

// deriveType resolves the transaction direction. An explicit dialect marker
// (withdrawal/deposit column, Dr/Cr flag) wins; a Cr/Dr suffix on the
// amount itself is next, with the normalized sign carrying the direction.
// Bare generic amounts follow spend-entry convention: positive is money
// out.
func deriveType(raw dialect.RawTransaction, amount float64) ledger.Type {
	switch raw.Flow {
	case dialect.FlowDebit:
		return ledger.TypeExpense
	case dialect.FlowCredit:
		return ledger.TypeIncome
	}

	if normalizer.HasCreditDebitSuffix(raw.AmountText) {
		if amount > 0 {
			return ledger.TypeIncome
		}
		return ledger.TypeExpense
	}

	if amount > 0 {
		return ledger.TypeExpense
	}
	return ledger.TypeIncome
}

// CommitBatch attaches the currency invariant, runs auto-categorization,
// and hands transactions to the ledger in input order. A conversion failure
// skips only the transactions needing that rate; a ledger write failure
// aborts, since partial persistence is the collaborator's concern, not
// ours.
func (s *Service) CommitBatch(ctx context.Context, txs []*ledger.CanonicalTransaction) (int, []RowDiagnostic, error) {
	if s.book == nil {
		return 0, nil, fmt.Errorf("no ledger configured")
	}

	var skipped []RowDiagnostic
	committed := 0

	for i, tx := range txs {
		record, err := s.converter.Commit(ctx, tx.Amount, tx.Currency)
		if err != nil {
			s.logger.Warn("conversion failed, skipping transaction",
				slog.String("currency", tx.Currency),
				slog.Any("error", err),
			)
			// Line here is the 1-based position within the batch; the
			// original file line is gone by commit time.
			skipped = append(skipped, RowDiagnostic{Line: i + 1, Reason: err.Error()})
			continue
		}
		tx.AmountRecord = record

		s.categorizer.Apply(tx)

		if err := s.book.Add(ctx, tx); err != nil {
			return committed, skipped, fmt.Errorf("ledger add: %w", err)
		}
		committed++
	}

	return committed, skipped, nil
}
