package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/paisebook/paisebook/pkg/money"
)

// ErrRateUnavailable is returned when a rate can be neither fetched nor
// served from cache. Only the conversion needing that pair fails; the rest
// of a batch proceeds.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// rateScale is the precision kept on derived entry-time rates.
const rateScale = 6

// LedgerAmountRecord is the dual-currency invariant carried by every
// transaction in the ledger, imported or manually entered:
//
//	AmountBase == OriginalAmount.Mul(ExchangeRate).Round(2)  when Currency != base
//	AmountBase == OriginalAmount                             when Currency == base
//
// ExchangeRate is captured at commit time and never recomputed; historical
// records keep their original conversion permanently.
type LedgerAmountRecord struct {
	AmountBase     decimal.Decimal `json:"amount_base"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
}

// Service converts entry-currency amounts into the ledger base currency at
// commit time and redisplays base amounts in other currencies on demand.
// The two operations are independent: Display never touches stored records.
type Service struct {
	base     string
	provider RateProvider
	cache    RateCache
	logger   *slog.Logger
}

// NewService creates a conversion service for the given base currency.
func NewService(baseCurrency string, provider RateProvider, cache RateCache, logger *slog.Logger) *Service {
	return &Service{
		base:     baseCurrency,
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

// BaseCurrency returns the ledger's reporting currency.
func (s *Service) BaseCurrency() string {
	return s.base
}

// Commit captures the entry-time conversion for an amount in the given
// currency. Base-currency entries pass through with a rate of 1.
func (s *Service) Commit(ctx context.Context, amount decimal.Decimal, currencyCode string) (*LedgerAmountRecord, error) {
	if currencyCode == "" || currencyCode == s.base {
		return &LedgerAmountRecord{
			AmountBase:     amount,
			OriginalAmount: amount,
			Currency:       s.base,
			ExchangeRate:   decimal.NewFromInt(1),
		}, nil
	}

	rate, err := s.rateToBase(ctx, currencyCode)
	if err != nil {
		return nil, err
	}
	return CommitWithRate(amount, currencyCode, rate), nil
}

// CommitWithRate builds the invariant record from an already-captured rate.
// Commit delegates here after lookup; manual entries whose rate was captured
// earlier in the same session use it directly.
func CommitWithRate(amount decimal.Decimal, currencyCode string, rate decimal.Decimal) *LedgerAmountRecord {
	return &LedgerAmountRecord{
		AmountBase:     amount.Mul(rate).Round(2),
		OriginalAmount: amount,
		Currency:       currencyCode,
		ExchangeRate:   rate,
	}
}

// Display converts a base-currency amount into the target currency using a
// current rate. Reporting-only: the stored record is not consulted and not
// modified, so redisplay is free to use a fresher rate than the one frozen
// at entry.
func (s *Service) Display(ctx context.Context, baseAmount decimal.Decimal, targetCurrency string) (decimal.Decimal, error) {
	if targetCurrency == "" || targetCurrency == s.base {
		return baseAmount, nil
	}

	table, err := s.tableFor(ctx, s.base)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := table.Rates[targetCurrency]
	if !ok || rate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s->%s", ErrRateUnavailable, s.base, targetCurrency)
	}
	return baseAmount.Mul(rate).Round(2), nil
}

// DisplayText converts a base-currency amount into the target currency and
// formats it with that currency's symbol, e.g. "$12.03". An empty target
// formats in the base currency without conversion.
func (s *Service) DisplayText(ctx context.Context, baseAmount decimal.Decimal, targetCurrency string) (string, error) {
	converted, err := s.Display(ctx, baseAmount, targetCurrency)
	if err != nil {
		return "", err
	}
	code := targetCurrency
	if code == "" {
		code = s.base
	}
	return money.NewFromDecimal(converted, code).Display(), nil
}

// Refresh force-fetches the base-currency table and stores it. Used by the
// scheduler to pre-warm the cache ahead of imports.
func (s *Service) Refresh(ctx context.Context) error {
	table, err := s.provider.Fetch(ctx, s.base)
	if err != nil {
		return fmt.Errorf("refresh rates for %s: %w", s.base, err)
	}
	if err := s.cache.Put(s.base, table); err != nil {
		return fmt.Errorf("store refreshed rates: %w", err)
	}
	return nil
}

// rateToBase derives the entry-time multiplier for one unit of the entry
// currency expressed in base currency. Tables are keyed by base, so the
// multiplier is the inverse of the base->entry rate.
func (s *Service) rateToBase(ctx context.Context, entryCurrency string) (decimal.Decimal, error) {
	table, err := s.tableFor(ctx, s.base)
	if err != nil {
		return decimal.Zero, err
	}

	perBase, ok := table.Rates[entryCurrency]
	if !ok || perBase.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s->%s", ErrRateUnavailable, entryCurrency, s.base)
	}
	return decimal.NewFromInt(1).DivRound(perBase, rateScale), nil
}

// tableFor serves the cached table when fresh, refreshes on a miss, and
// degrades to a stale table when the refresh fails. A refresh failure with
// nothing cached is a hard failure for this base only.
func (s *Service) tableFor(ctx context.Context, base string) (*RateTable, error) {
	if table, ok := s.cache.Get(base); ok && s.cache.IsFresh(table) {
		return table, nil
	}

	fresh, err := s.provider.Fetch(ctx, base)
	if err != nil {
		if table, ok := s.cache.Get(base); ok {
			s.logger.Warn("rate refresh failed, serving stale table",
				slog.String("base", base),
				slog.Time("fetched_at", table.FetchedAt),
				slog.Any("error", err),
			)
			return table, nil
		}
		return nil, fmt.Errorf("%w: no cached rates for %s: %v", ErrRateUnavailable, base, err)
	}

	if err := s.cache.Put(base, fresh); err != nil {
		s.logger.Warn("failed to persist rate table", slog.String("base", base), slog.Any("error", err))
	}
	return fresh, nil
}
