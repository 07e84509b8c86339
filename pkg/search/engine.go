// Package search filters and orders a read-only product snapshot for display.
package search

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"neocommerce.in/storefront/pkg/models"
)

// All is the category sentinel that disables category filtering.
const All = "all"

type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortRating    SortMode = "rating"
	SortName      SortMode = "name"
)

func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return SortDefault, nil
	case SortDefault, SortPriceLow, SortPriceHigh, SortRating, SortName:
		return m, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Result is one pass of the search, filter and sort pipeline.
type Result struct {
	Products     []models.ProductRecord `json:"products"`
	Count        int                    `json:"count"`
	Term         string                 `json:"term,omitempty"`
	SearchActive bool                   `json:"search_active"`
}

// NoResults reports an active search that matched nothing, as opposed to no search at all.
func (r Result) NoResults() bool {
	return r.SearchActive && r.Count == 0
}

// Summary is the results banner text, empty when no search is active.
func (r Result) Summary() string {
	if !r.SearchActive {
		return ""
	}
	plural := "s"
	if r.Count == 1 {
		plural = ""
	}
	return fmt.Sprintf("Found %d product%s for %q", r.Count, plural, r.Term)
}

// Engine holds the current search term, category filter and sort mode. It is not safe for
// concurrent use; Controller serialises access.
type Engine struct {
	products []models.ProductRecord
	term     string
	category string
	sort     SortMode
	collator *collate.Collator
}

func NewEngine(products []models.ProductRecord) *Engine {
	return &Engine{
		products: slices.Clone(products),
		category: All,
		sort:     SortDefault,
		collator: collate.New(language.English),
	}
}

func (e *Engine) SetSearchTerm(s string) {
	e.term = strings.ToLower(strings.TrimSpace(s))
}

func (e *Engine) SearchTerm() string { return e.term }

func (e *Engine) SetCategoryFilter(c string) error {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" || c == All {
		e.category = All
		return nil
	}
	parsed, err := models.ParseCategory(c)
	if err != nil {
		return err
	}
	e.category = string(parsed)
	return nil
}

func (e *Engine) CategoryFilter() string { return e.category }

func (e *Engine) SetSort(mode SortMode) error {
	if _, err := ParseSortMode(string(mode)); err != nil {
		return err
	}
	if mode == "" {
		mode = SortDefault
	}
	e.sort = mode
	return nil
}

func (e *Engine) Sort() SortMode { return e.sort }

// Apply runs search, then category, then a stable sort. The snapshot itself is never reordered.
func (e *Engine) Apply() Result {
	filtered := make([]models.ProductRecord, 0, len(e.products))
	for _, p := range e.products {
		if e.term != "" && !matches(p, e.term) {
			continue
		}
		if e.category != All && string(p.Category) != e.category {
			continue
		}
		filtered = append(filtered, p)
	}

	if cmp := e.comparator(); cmp != nil {
		slices.SortStableFunc(filtered, cmp)
	}

	return Result{
		Products:     filtered,
		Count:        len(filtered),
		Term:         e.term,
		SearchActive: e.term != "",
	}
}

func matches(p models.ProductRecord, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.DisplayTitle()), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category.Label()), term)
}

func (e *Engine) comparator() func(a, b models.ProductRecord) int {
	switch e.sort {
	case SortPriceLow:
		return func(a, b models.ProductRecord) int { return compareInt(a.Price, b.Price) }
	case SortPriceHigh:
		return func(a, b models.ProductRecord) int { return compareInt(b.Price, a.Price) }
	case SortRating:
		return func(a, b models.ProductRecord) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			}
			return 0
		}
	case SortName:
		return func(a, b models.ProductRecord) int {
			return e.collator.CompareString(a.DisplayTitle(), b.DisplayTitle())
		}
	}
	return nil
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
