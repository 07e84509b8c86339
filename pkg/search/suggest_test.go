package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neocommerce.in/storefront/pkg/catalog"
)

func texts(s []Suggestion) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		out = append(out, x.Text)
	}
	return out
}

func TestSuggestions(t *testing.T) {
	e := NewEngine(catalog.Default().Products())
	tests := []struct {
		term string
		want []string
	}{
		{"", nil},
		{"tech", []string{"Neon Tech Backpack", "Tech"}},
		{"wear", []string{"Wearables", "Footwear"}},
		{"monitor", []string{`Search for "monitor"`}},
		// the keyword is already present in a product title
		{"head", []string{"VR Gaming Headset Pro"}},
		{"quantum", []string{"Quantum Gaming Mouse", "Quantum Wireless Earbuds"}},
		{"s", []string{
			"Luminous Solar On-Grid/GTI Solar Inverter",
			"Luminous Solar Combo",
			"Solar Charge Controller",
			"Neural Enhancement Glasses",
			"Gravity-Defying Sneakers",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := e.Suggestions(tt.term)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, texts(got))
		})
	}
}

func TestSuggestionValues(t *testing.T) {
	e := NewEngine(catalog.Default().Products())

	got := e.Suggestions("foot")
	if assert.Len(t, got, 1) {
		assert.Equal(t, SuggestCategory, got[0].Kind)
		assert.Equal(t, "footwear", got[0].Value)
	}

	got = e.Suggestions("wireless")
	assert.Equal(t, SuggestProduct, got[0].Kind)

	got = e.Suggestions("glass")
	assert.Equal(t, []string{"Neural Enhancement Glasses"}, texts(got))
}

func TestSuggestionsDeduplicate(t *testing.T) {
	e := NewEngine(append(catalog.Default().Products(), catalog.Default().Products()[0]))
	got := e.Suggestions("luminous")
	assert.Equal(t, []string{"Luminous Solar On-Grid/GTI Solar Inverter", "Luminous Solar Combo"}, texts(got))
}
