package classify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Backend produces a category for a query, or an error when it cannot.
// Implementations must return a member of the closed category set;
// anything else is treated as a failed attempt by the Classifier.
type Backend interface {
	Enabled() bool
	Categorize(ctx context.Context, query string) (Category, error)
}

// Classifier walks an ordered backend chain and guarantees a valid
// Category for every input. Backend errors and invalid labels are
// absorbed here and never propagate past Classify.
type Classifier struct {
	backends []Backend
}

// NewClassifier builds a classifier over the provided backends, consulted
// in order. Nil backends are skipped.
func NewClassifier(backends ...Backend) *Classifier {
	c := &Classifier{}
	for _, b := range backends {
		if b != nil {
			c.backends = append(c.backends, b)
		}
	}
	return c
}

// Classify resolves the query to a category. The first enabled backend
// that returns a valid label wins; failures fall through to the next
// backend, and exhaustion yields the general fallback.
func (c *Classifier) Classify(ctx context.Context, query string) Category {
	if c == nil {
		return CategoryGeneral
	}
	for _, backend := range c.backends {
		if !backend.Enabled() {
			continue
		}
		category, err := backend.Categorize(ctx, query)
		if err != nil {
			logrus.WithError(err).Warn("classification backend failed, trying next")
			continue
		}
		if !category.Valid() {
			logrus.WithField("label", string(category)).Warn("classification backend returned invalid label")
			continue
		}
		return category
	}
	return CategoryGeneral
}
