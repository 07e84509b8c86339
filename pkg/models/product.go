package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is one of the fixed storefront category slugs.
type Category string

const (
	CategoryGaming      Category = "gaming"
	CategoryFashion     Category = "fashion"
	CategoryTech        Category = "tech"
	CategoryWearables   Category = "wearables"
	CategoryFootwear    Category = "footwear"
	CategoryAccessories Category = "accessories"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryGaming,
		CategoryFashion,
		CategoryTech,
		CategoryWearables,
		CategoryFootwear,
		CategoryAccessories,
	}
}

// Label is the capitalised display name, e.g. "Wearables". A Caser is stateful, so each call
// builds its own.
func (c Category) Label() string {
	return cases.Title(language.English).String(string(c))
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts a category slug in any case, surrounding space ignored.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// ProductRecord is read-only catalogue data. Price is in whole rupees.
type ProductRecord struct {
	ID          int      `json:"id" yaml:"id" bson:"product_id"`
	Name        string   `json:"name" yaml:"name" bson:"name"`
	Title       string   `json:"title" yaml:"title" bson:"title"`
	Description string   `json:"description" yaml:"description" bson:"description"`
	Category    Category `json:"category" yaml:"category" bson:"category"`
	Price       int64    `json:"price" yaml:"price" bson:"price"`
	Rating      float64  `json:"rating" yaml:"rating" bson:"rating"`
	Image       string   `json:"image" yaml:"image" bson:"image"`
}

// DisplayTitle falls back to Name when no separate title is set.
func (p ProductRecord) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

func (p ProductRecord) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("product id must be positive, got %d", p.ID)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("product %d has no name", p.ID)
	case !p.Category.Valid():
		return fmt.Errorf("product %d has unknown category %q", p.ID, p.Category)
	case p.Price < 0:
		return fmt.Errorf("product %d has negative price", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("product %d rating %.1f out of range", p.ID, p.Rating)
	}
	return nil
}
