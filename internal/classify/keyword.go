package classify

import (
	"context"
	"strings"
)

// keywordRule binds an ordered indicator list to its category.
type keywordRule struct {
	category Category
	terms    []string
}

// Rule order is the tie-break contract: a query matching several
// categories resolves to the earliest rule that hits.
var keywordRules = []keywordRule{
	{
		category: CategoryStock,
		terms:    []string{"price", "pe ratio", "dividend", "volume", "chart", "high", "low", "market cap"},
	},
	{
		category: CategoryNews,
		terms:    []string{"news", "headline", "happened", "event", "latest", "update", "report"},
	},
	{
		category: CategoryPortfolio,
		terms:    []string{"portfolio", "holding", "bought", "sold", "buy", "sell", "balance", "account", "transaction", "position"},
	},
}

// KeywordBackend classifies by case-insensitive substring matching against
// fixed indicator lists. It holds no mutable state and is safe for
// concurrent use.
type KeywordBackend struct{}

// NewKeywordBackend constructs the deterministic rule backend.
func NewKeywordBackend() *KeywordBackend {
	return &KeywordBackend{}
}

// Enabled always reports true; the rule tables need no configuration.
func (b *KeywordBackend) Enabled() bool {
	return b != nil
}

// Categorize scans the rules in priority order and returns the first
// category whose indicator terms appear in the query. No match is general.
func (b *KeywordBackend) Categorize(_ context.Context, query string) (Category, error) {
	q := strings.ToLower(query)
	for _, rule := range keywordRules {
		for _, term := range rule.terms {
			if strings.Contains(q, term) {
				return rule.category, nil
			}
		}
	}
	return CategoryGeneral, nil
}
