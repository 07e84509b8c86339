package view

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/models"
	"neocommerce.in/storefront/pkg/search"
	"neocommerce.in/storefront/pkg/signup"
	"neocommerce.in/storefront/pkg/storage"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		text, term string
		want       []Segment
	}{
		{"Neon Tech Backpack", "", []Segment{{Text: "Neon Tech Backpack"}}},
		{"Neon Tech Backpack", "tech", []Segment{{Text: "Neon "}, {Text: "Tech", Match: true}, {Text: " Backpack"}}},
		{"Neon Bomber Jacket", "n", []Segment{
			{Text: "N", Match: true}, {Text: "eo"}, {Text: "n", Match: true}, {Text: " Bomber Jacket"},
		}},
		{"Quantum", "quantum", []Segment{{Text: "Quantum", Match: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.term))
		})
	}
}

func TestNewCartView(t *testing.T) {
	v := NewCartView(models.CartSummary{
		Items: []models.CartLineItem{
			{ProductID: 9, Name: "Smart Contact Lenses", Price: 124999, Quantity: 2},
		},
		ItemCount: 2,
		Total:     249998,
	})
	assert.False(t, v.Empty)
	assert.Equal(t, "₹2,49,998", v.Total)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "₹1,24,999", v.Items[0].Price)
	assert.Equal(t, 1, v.Items[0].Decrement)
	assert.Equal(t, 3, v.Items[0].Increment)

	assert.True(t, NewCartView(models.CartSummary{}).Empty)
}

func TestNewResultsViewMarksSelection(t *testing.T) {
	e := search.NewEngine(catalog.Default().Products())
	require.NoError(t, e.SetCategoryFilter("wearables"))
	require.NoError(t, e.SetSort(search.SortPriceHigh))

	v := NewResultsView(search.View{Result: e.Apply(), Category: e.CategoryFilter(), Sort: e.Sort()})
	assert.Equal(t, 3, v.Count)
	assert.Equal(t, 9, v.Cards[0].ID)
	assert.Equal(t, "Wearables", v.Cards[0].Category)
	assert.Equal(t, "4.4", v.Cards[0].Rating)

	var selected []string
	for _, o := range append(v.Categories, v.SortOptions...) {
		if o.Selected {
			selected = append(selected, o.Value)
		}
	}
	assert.Equal(t, []string{"wearables", "price-high"}, selected)
}

func TestNewHeaderView(t *testing.T) {
	assert.Equal(t, HeaderView{CartCount: 3}, NewHeaderView(nil, 3))

	v := NewHeaderView(&models.UserSession{Email: "zed@example.com"}, 0)
	assert.True(t, v.LoggedIn)
	assert.Equal(t, "zed", v.Name)
	assert.Equal(t, "Z", v.Initial)
}

func TestRendererEscapesAndRendersFragments(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Execute(&buf, CartTemplate, NewCartView(models.CartSummary{
		Items:     []models.CartLineItem{{ProductID: 1, Name: `<script>alert(1)</script>`, Price: 100, Quantity: 1}},
		ItemCount: 1,
		Total:     100,
	})))
	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.Contains(t, buf.String(), "₹100")

	buf.Reset()
	require.NoError(t, r.Execute(&buf, CartTemplate, NewCartView(models.CartSummary{})))
	assert.Contains(t, buf.String(), "Your cart is empty")

	e := search.NewEngine(catalog.Default().Products())
	e.SetSearchTerm("zzz")
	buf.Reset()
	require.NoError(t, r.Execute(&buf, ProductsTemplate, NewResultsView(search.View{Result: e.Apply(), Category: search.All, Sort: search.SortDefault})))
	assert.Contains(t, buf.String(), "No products found")
	assert.Contains(t, buf.String(), `Found 0 products for &#34;zzz&#34;`)
}

func TestRendererImplementsHTMLRender(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(HeaderTemplate, NewHeaderView(nil, 0)).Render(w))
	assert.Contains(t, w.Body.String(), "Join Now")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestSignupViewFollowsWizard(t *testing.T) {
	ctx := context.Background()
	api := &signup.SimulatedAPI{Roll: func() float64 { return 1 }, Now: time.Now}
	w, err := signup.New(ctx, storage.NewMemoryStore(), api, nil, signup.Options{HashCost: bcrypt.MinCost})
	require.NoError(t, err)

	err = w.Identity(ctx, models.IdentityRequest{Email: "bad"})
	verrs, ok := err.(signup.ValidationErrors)
	require.True(t, ok)
	v := NewSignupView(w, verrs)
	assert.Equal(t, 1, v.Step)
	assert.Equal(t, "Please enter a valid email address", v.Errors["email"])
	assert.True(t, v.Steps[0].Active)

	require.NoError(t, w.Identity(ctx, models.IdentityRequest{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com",
		Password: "Abcdefg1", ConfirmPassword: "Abcdefg1",
	}))
	require.NoError(t, w.Profile(ctx, models.ProfileRequest{}))
	v = NewSignupView(w, nil)
	assert.Equal(t, 3, v.Step)
	assert.True(t, v.Steps[0].Completed)
	assert.True(t, v.Steps[2].Active)
	assert.Equal(t, "None selected", v.Summary.Interests)

	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Execute(&buf, SignupTemplate, v))
	assert.Contains(t, buf.String(), "None selected")
	assert.NotContains(t, buf.String(), "Abcdefg1")

	_, err = w.Submit(ctx, models.ConsentRequest{Terms: true, AgeVerification: true})
	require.NoError(t, err)
	v = NewSignupView(w, nil)
	assert.True(t, v.Done)
	assert.NotEmpty(t, v.UserID)
}
