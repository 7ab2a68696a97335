// Package ledger defines the canonical transaction record the import
// pipeline produces and the persistence collaborator that receives it.
package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paisebook/paisebook/internal/domain/currency"
)

// Type marks the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// DefaultCategory is the placeholder every freshly normalized transaction
// starts with. The auto-categorizer only ever overwrites this value;
// explicitly-set categories are left alone.
const DefaultCategory = "Uncategorized"

// CanonicalTransaction is the durable output unit of the import pipeline.
// Amount is the unsigned magnitude in the entry currency; direction lives in
// Type, and the base-currency conversion lives in AmountRecord.
type CanonicalTransaction struct {
	ID           uuid.UUID                    `json:"id"`
	Date         string                       `json:"date"` // ISO YYYY-MM-DD
	Description  string                       `json:"description"`
	Payee        string                       `json:"payee"`
	Amount       decimal.Decimal              `json:"amount"`
	Type         Type                         `json:"type"`
	Category     string                       `json:"category"`
	Currency     string                       `json:"currency"`
	Tags         []string                     `json:"tags,omitempty"`
	AmountRecord *currency.LedgerAmountRecord `json:"amount_record,omitempty"`
}

// HasExplicitCategory reports whether a category was deliberately set, as
// opposed to the import default.
func (t *CanonicalTransaction) HasExplicitCategory() bool {
	return t.Category != "" && t.Category != DefaultCategory
}

// AddTags unions labels into the transaction's tag set, preserving first-seen
// order.
func (t *CanonicalTransaction) AddTags(labels ...string) {
	for _, label := range labels {
		seen := false
		for _, existing := range t.Tags {
			if existing == label {
				seen = true
				break
			}
		}
		if !seen {
			t.Tags = append(t.Tags, label)
		}
	}
}

// Ledger is the persistence collaborator. Its storage format and atomicity
// are outside the pipeline's guarantees; the core only requires Add.
type Ledger interface {
	Add(ctx context.Context, tx *CanonicalTransaction) error
}
