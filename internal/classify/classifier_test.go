package classify

import (
	"context"
	"errors"
	"testing"
)

type stubBackend struct {
	enabled  bool
	category Category
	err      error
	calls    int
}

func (s *stubBackend) Enabled() bool { return s.enabled }

func (s *stubBackend) Categorize(context.Context, string) (Category, error) {
	s.calls++
	return s.category, s.err
}

func TestClassifierFallsBackOnError(t *testing.T) {
	failing := &stubBackend{enabled: true, err: errors.New("backend timeout")}
	classifier := NewClassifier(failing, NewKeywordBackend())

	got := classifier.Classify(context.Background(), "Latest news on Apple")
	if got != CategoryNews {
		t.Fatalf("expected news got %s", got)
	}
	if failing.calls != 1 {
		t.Fatalf("expected failing backend consulted once, got %d", failing.calls)
	}
}

func TestClassifierRejectsInvalidLabel(t *testing.T) {
	bogus := &stubBackend{enabled: true, category: Category("stonks")}
	classifier := NewClassifier(bogus, NewKeywordBackend())

	if got := classifier.Classify(context.Background(), "Show my portfolio"); got != CategoryPortfolio {
		t.Fatalf("expected portfolio got %s", got)
	}
}

func TestClassifierSkipsDisabledBackends(t *testing.T) {
	disabled := &stubBackend{enabled: false, category: CategoryStock}
	classifier := NewClassifier(disabled, NewKeywordBackend())

	if got := classifier.Classify(context.Background(), "Hello"); got != CategoryGeneral {
		t.Fatalf("expected general got %s", got)
	}
	if disabled.calls != 0 {
		t.Fatalf("disabled backend should never be consulted")
	}
}

func TestClassifierExhaustionIsGeneral(t *testing.T) {
	failing := &stubBackend{enabled: true, err: errors.New("down")}
	classifier := NewClassifier(failing)

	if got := classifier.Classify(context.Background(), "price of AAPL"); got != CategoryGeneral {
		t.Fatalf("expected general fallback got %s", got)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		raw   string
		want  Category
		valid bool
	}{
		{"stock", CategoryStock, true},
		{" News \n", CategoryNews, true},
		{"PORTFOLIO", CategoryPortfolio, true},
		{"general", CategoryGeneral, true},
		{"finance", CategoryGeneral, false},
		{"", CategoryGeneral, false},
	}
	for _, tc := range tests {
		got, ok := ParseCategory(tc.raw)
		if got != tc.want || ok != tc.valid {
			t.Fatalf("ParseCategory(%q) = %s,%v want %s,%v", tc.raw, got, ok, tc.want, tc.valid)
		}
	}
}
