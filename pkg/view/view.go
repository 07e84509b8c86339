// Package view projects controller state into template-ready values.
package view

import (
	"fmt"
	"strings"

	"neocommerce.in/storefront/pkg/models"
	"neocommerce.in/storefront/pkg/search"
	"neocommerce.in/storefront/pkg/signup"
)

type CartLineView struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Subtotal  string `json:"subtotal"`
	Decrement int    `json:"decrement"`
	Increment int    `json:"increment"`
}

type CartView struct {
	Items []CartLineView `json:"items"`
	Count int            `json:"count"`
	Total string         `json:"total"`
	Empty bool           `json:"empty"`
}

func NewCartView(s models.CartSummary) CartView {
	v := CartView{
		Items: make([]CartLineView, 0, len(s.Items)),
		Count: s.ItemCount,
		Total: models.FormatRupees(s.Total),
		Empty: len(s.Items) == 0,
	}
	for _, it := range s.Items {
		v.Items = append(v.Items, CartLineView{
			ID:        it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Quantity:  it.Quantity,
			Price:     models.FormatRupees(it.Price),
			Subtotal:  models.FormatRupees(it.Subtotal()),
			Decrement: it.Quantity - 1,
			Increment: it.Quantity + 1,
		})
	}
	return v
}

// Segment is a run of title text; Match marks the part equal to the search term.
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match,omitempty"`
}

type ProductCard struct {
	ID          int       `json:"id"`
	Title       []Segment `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	Rating      string    `json:"rating"`
	Image       string    `json:"image"`
}

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

type ResultsView struct {
	Cards       []ProductCard       `json:"cards"`
	Count       int                 `json:"count"`
	Term        string              `json:"term,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	NoResults   bool                `json:"no_results"`
	Categories  []Option            `json:"categories"`
	SortOptions []Option            `json:"sort_options"`
	Suggestions []search.Suggestion `json:"suggestions,omitempty"`
}

var sortLabels = []Option{
	{Value: string(search.SortDefault), Label: "Featured"},
	{Value: string(search.SortPriceLow), Label: "Price: Low to High"},
	{Value: string(search.SortPriceHigh), Label: "Price: High to Low"},
	{Value: string(search.SortRating), Label: "Highest Rated"},
	{Value: string(search.SortName), Label: "Name: A to Z"},
}

func NewResultsView(v search.View) ResultsView {
	out := ResultsView{
		Cards:       make([]ProductCard, 0, len(v.Result.Products)),
		Count:       v.Result.Count,
		Term:        v.Result.Term,
		Summary:     v.Result.Summary(),
		NoResults:   v.Result.NoResults(),
		Suggestions: v.Suggestions,
	}
	for _, p := range v.Result.Products {
		out.Cards = append(out.Cards, ProductCard{
			ID:          p.ID,
			Title:       Highlight(p.DisplayTitle(), v.Result.Term),
			Description: p.Description,
			Category:    p.Category.Label(),
			Price:       models.FormatRupees(p.Price),
			Rating:      fmt.Sprintf("%.1f", p.Rating),
			Image:       p.Image,
		})
	}

	out.Categories = append(out.Categories, Option{Value: search.All, Label: "All", Selected: v.Category == search.All})
	for _, c := range models.Categories() {
		out.Categories = append(out.Categories, Option{Value: string(c), Label: c.Label(), Selected: v.Category == string(c)})
	}
	for _, o := range sortLabels {
		o.Selected = o.Value == string(v.Sort)
		out.SortOptions = append(out.SortOptions, o)
	}
	return out
}

// Highlight splits text around every case-insensitive occurrence of term.
func Highlight(text, term string) []Segment {
	term = strings.ToLower(term)
	lower := strings.ToLower(text)
	if term == "" || len(lower) != len(text) {
		return []Segment{{Text: text}}
	}

	var segs []Segment
	for {
		i := strings.Index(lower, term)
		if i < 0 {
			break
		}
		if i > 0 {
			segs = append(segs, Segment{Text: text[:i]})
		}
		segs = append(segs, Segment{Text: text[i : i+len(term)], Match: true})
		text, lower = text[i+len(term):], lower[i+len(term):]
	}
	if text != "" {
		segs = append(segs, Segment{Text: text})
	}
	return segs
}

type HeaderView struct {
	LoggedIn  bool   `json:"logged_in"`
	Name      string `json:"name,omitempty"`
	Initial   string `json:"initial,omitempty"`
	CartCount int    `json:"cart_count"`
}

func NewHeaderView(user *models.UserSession, cartCount int) HeaderView {
	v := HeaderView{CartCount: cartCount}
	if user != nil {
		v.LoggedIn = true
		v.Name = user.DisplayName()
		v.Initial = user.Initial()
	}
	return v
}

type StepIndicator struct {
	Number    int    `json:"number"`
	Label     string `json:"label"`
	Active    bool   `json:"active,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

type SignupView struct {
	Step    int               `json:"step"`
	Steps   []StepIndicator   `json:"steps"`
	Draft   SignupDraftView   `json:"draft"`
	Summary signup.Summary    `json:"summary"`
	Errors  map[string]string `json:"errors,omitempty"`
	Done    bool              `json:"done"`
	UserID  string            `json:"user_id,omitempty"`
}

// SignupDraftView echoes entered values back into the form. The password never appears.
type SignupDraftView struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	DateOfBirth string   `json:"date_of_birth"`
	Interests   []string `json:"interests"`
	Newsletter  bool     `json:"newsletter"`
}

var stepLabels = []string{"Account", "Profile", "Confirm"}

// NewSignupView renders the wizard, attaching field errors from the last rejected step.
func NewSignupView(w *signup.Wizard, errs signup.ValidationErrors) SignupView {
	step := w.Step()
	d := w.Draft()
	v := SignupView{
		Step: int(step),
		Draft: SignupDraftView{
			FirstName:   d.FirstName,
			LastName:    d.LastName,
			Email:       d.Email,
			Phone:       d.Phone,
			DateOfBirth: d.DateOfBirth,
			Interests:   d.Interests,
			Newsletter:  d.Newsletter,
		},
		Summary: w.Summary(),
		Done:    step == signup.Submitted,
	}
	for i, label := range stepLabels {
		n := i + 1
		v.Steps = append(v.Steps, StepIndicator{
			Number:    n,
			Label:     label,
			Active:    n == int(step),
			Completed: n < int(step),
		})
	}
	if sess := w.Session(); sess != nil {
		v.UserID = sess.UserID
	}
	if len(errs) > 0 {
		v.Errors = make(map[string]string, len(errs))
		for _, fe := range errs {
			v.Errors[fe.Field] = fe.Message
		}
	}
	return v
}
