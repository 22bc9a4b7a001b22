package classify

import "strings"

// Category is one of the fixed intent labels a query resolves to.
type Category string

const (
	// CategoryStock covers price, technical indicators, and company financials.
	CategoryStock Category = "stock"
	// CategoryNews covers market news, recent events, and sentiment.
	CategoryNews Category = "news"
	// CategoryPortfolio covers holdings, transactions, and account questions.
	CategoryPortfolio Category = "portfolio"
	// CategoryGeneral is both a legitimate label and the universal fallback.
	CategoryGeneral Category = "general"
)

var validCategories = map[Category]struct{}{
	CategoryStock:     {},
	CategoryNews:      {},
	CategoryPortfolio: {},
	CategoryGeneral:   {},
}

// Valid reports whether the label is a member of the closed category set.
func (c Category) Valid() bool {
	_, ok := validCategories[c]
	return ok
}

// ParseCategory normalizes a raw label and checks enum membership.
// The boolean is false for anything outside the four known values.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.Valid() {
		return c, true
	}
	return CategoryGeneral, false
}
