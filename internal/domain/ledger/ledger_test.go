package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasExplicitCategory(t *testing.T) {
	tx := &CanonicalTransaction{Category: DefaultCategory}
	assert.False(t, tx.HasExplicitCategory())

	tx.Category = ""
	assert.False(t, tx.HasExplicitCategory())

	tx.Category = "Rent"
	assert.True(t, tx.HasExplicitCategory())
}

func TestAddTags(t *testing.T) {
	tx := &CanonicalTransaction{}

	tx.AddTags("upi", "food-delivery")
	assert.Equal(t, []string{"upi", "food-delivery"}, tx.Tags)

	// Duplicates are ignored, first-seen order is kept.
	tx.AddTags("food-delivery", "recurring", "upi")
	assert.Equal(t, []string{"upi", "food-delivery", "recurring"}, tx.Tags)

	tx.AddTags()
	assert.Equal(t, []string{"upi", "food-delivery", "recurring"}, tx.Tags)
}
