package search

import (
	"fmt"
	"strings"

	"neocommerce.in/storefront/pkg/models"
)

const maxSuggestions = 5

type SuggestionKind string

const (
	SuggestProduct  SuggestionKind = "product"
	SuggestCategory SuggestionKind = "category"
	SuggestTerm     SuggestionKind = "term"
)

// commonTerms are marketing keywords offered when they contain the typed text.
var commonTerms = []string{
	"headset", "jacket", "monitor", "glasses", "sneakers",
	"wireless", "smart", "cyber", "quantum", "holographic",
}

// Suggestion is one completion. Value is what choosing it applies: a product title or keyword
// for the search box, or a category slug for the filter.
type Suggestion struct {
	Text  string         `json:"text"`
	Kind  SuggestionKind `json:"kind"`
	Value string         `json:"value"`
}

// Suggestions returns up to five completions: product titles, then categories, then common
// keywords. Duplicate texts are dropped.
func (e *Engine) Suggestions(term string) []Suggestion {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var out []Suggestion
	seen := make(map[string]bool)
	add := func(s Suggestion) {
		if seen[s.Text] {
			return
		}
		seen[s.Text] = true
		out = append(out, s)
	}

	for _, p := range e.products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			add(Suggestion{Text: p.DisplayTitle(), Kind: SuggestProduct, Value: p.DisplayTitle()})
		}
	}
	for _, c := range models.Categories() {
		if strings.Contains(string(c), term) {
			add(Suggestion{Text: c.Label(), Kind: SuggestCategory, Value: string(c)})
		}
	}
	for _, kw := range commonTerms {
		if !strings.Contains(kw, term) || coveredBy(out, kw) {
			continue
		}
		add(Suggestion{Text: fmt.Sprintf("Search for %q", kw), Kind: SuggestTerm, Value: kw})
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// coveredBy reports whether an earlier suggestion already mentions keyword.
func coveredBy(existing []Suggestion, keyword string) bool {
	for _, s := range existing {
		if strings.Contains(strings.ToLower(s.Text), keyword) {
			return true
		}
	}
	return false
}
