package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists canonical transactions to Postgres. It implements
// the Ledger collaborator for deployments that keep the ledger in the same
// database as the rest of the application.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger creates a Postgres-backed ledger.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Add inserts one canonical transaction together with its frozen
// entry-time conversion.
func (l *PostgresLedger) Add(ctx context.Context, tx *CanonicalTransaction) error {
	query := `
		INSERT INTO transactions (
			id, date, description, payee, amount, type, category, currency,
			tags, amount_base, original_amount, exchange_rate
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	record := tx.AmountRecord
	if record == nil {
		return fmt.Errorf("transaction %s has no amount record", tx.ID)
	}

	_, err := l.db.Exec(ctx, query,
		tx.ID,
		tx.Date,
		tx.Description,
		tx.Payee,
		tx.Amount,
		string(tx.Type),
		tx.Category,
		tx.Currency,
		tx.Tags,
		record.AmountBase,
		record.OriginalAmount,
		record.ExchangeRate,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}
