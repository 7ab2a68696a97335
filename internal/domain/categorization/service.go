package categorization

import (
	"log/slog"
	"strings"

	"github.com/paisebook/paisebook/internal/domain/ledger"
)

// Service applies best-effort categorization to canonical transactions.
// Tags and category are computed independently: tags always accumulate,
// while category assignment only fills gaps and never overwrites an
// explicitly-set value.
type Service struct {
	engine *Engine
	rules  []CategoryRule
	logger *slog.Logger
}

// NewService builds a categorization service over the given rule tables.
func NewService(rules []CategoryRule, tags []TagRule, logger *slog.Logger) *Service {
	return &Service{
		engine: NewEngine(rules, tags),
		rules:  rules,
		logger: logger,
	}
}

// NewDefaultService uses the built-in rule tables.
func NewDefaultService(logger *slog.Logger) *Service {
	return NewService(DefaultCategoryRules(), DefaultTagRules(), logger)
}

// Apply fills in category and tags on the transaction in place. The match
// text is the case-folded payee and description concatenated, so keywords
// hit in either field.
func (s *Service) Apply(tx *ledger.CanonicalTransaction) {
	text := strings.ToLower(tx.Payee + " " + tx.Description)

	tx.AddTags(s.engine.Tags(text)...)

	if tx.HasExplicitCategory() {
		return
	}

	if name, hitCount := s.engine.Category(text); hitCount > 0 {
		tx.Category = name
		return
	}

	if name, ok := FuzzyCategory(s.rules, tx.Payee); ok {
		s.logger.Debug("fuzzy category fallback",
			slog.String("payee", tx.Payee),
			slog.String("category", name),
		)
		tx.Category = name
	}
}

// ApplyBatch categorizes a whole import batch in order.
func (s *Service) ApplyBatch(txs []*ledger.CanonicalTransaction) {
	for _, tx := range txs {
		s.Apply(tx)
	}
}
