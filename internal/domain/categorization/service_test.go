package categorization

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paisebook/paisebook/internal/domain/ledger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Apply(t *testing.T) {
	svc := NewDefaultService(testLogger())

	t.Run("fills category from keyword hits", func(t *testing.T) {
		tx := &ledger.CanonicalTransaction{
			Payee:       "SWIGGY",
			Description: "UPI-SWIGGY-ORDER",
			Category:    ledger.DefaultCategory,
		}
		svc.Apply(tx)

		assert.Equal(t, "Food", tx.Category)
		assert.Contains(t, tx.Tags, "food-delivery")
		assert.Contains(t, tx.Tags, "upi")
	})

	t.Run("explicit category is never overwritten", func(t *testing.T) {
		tx := &ledger.CanonicalTransaction{
			Payee:       "SWIGGY",
			Description: "UPI-SWIGGY-ORDER",
			Category:    "Rent",
		}
		svc.Apply(tx)

		assert.Equal(t, "Rent", tx.Category)
		// Tags still accumulate even when the category is pinned.
		assert.Contains(t, tx.Tags, "food-delivery")
	})

	t.Run("default category is replaceable", func(t *testing.T) {
		tx := &ledger.CanonicalTransaction{
			Payee:    "Uber Ride",
			Category: ledger.DefaultCategory,
		}
		svc.Apply(tx)
		assert.Equal(t, "Transport", tx.Category)
	})

	t.Run("fuzzy fallback on typo payees", func(t *testing.T) {
		tx := &ledger.CanonicalTransaction{
			Payee:    "Swigy",
			Category: ledger.DefaultCategory,
		}
		svc.Apply(tx)
		assert.Equal(t, "Food", tx.Category)
	})

	t.Run("unmatched stays uncategorized", func(t *testing.T) {
		tx := &ledger.CanonicalTransaction{
			Payee:    "xqzvbnmlkjh",
			Category: ledger.DefaultCategory,
		}
		svc.Apply(tx)
		assert.Equal(t, ledger.DefaultCategory, tx.Category)
	})

	t.Run("repeated apply does not duplicate tags", func(t *testing.T) {
		tx := &ledger.CanonicalTransaction{
			Payee:    "SWIGGY",
			Category: ledger.DefaultCategory,
		}
		svc.Apply(tx)
		svc.Apply(tx)
		assert.Equal(t, []string{"food-delivery"}, tx.Tags)
	})
}

func TestService_ApplyBatch(t *testing.T) {
	svc := NewDefaultService(testLogger())

	txs := []*ledger.CanonicalTransaction{
		{Payee: "Swiggy Order", Category: ledger.DefaultCategory},
		{Payee: "Uber Ride", Category: ledger.DefaultCategory},
	}
	svc.ApplyBatch(txs)

	assert.Equal(t, "Food", txs[0].Category)
	assert.Equal(t, "Transport", txs[1].Category)
}
