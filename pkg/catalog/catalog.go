// Package catalog holds the immutable product reference data shared by the cart and the
// search engine.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"neocommerce.in/storefront/pkg/models"
)

type Catalog struct {
	products []models.ProductRecord
	byID     map[int]int
}

// FromProducts validates the records and keeps them in the given order. Categories are
// normalised to their slug, so "Gaming" and "gaming" are the same.
func FromProducts(products []models.ProductRecord) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.ProductRecord, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if category, err := models.ParseCategory(string(p.Category)); err == nil {
			p.Category = category
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

type catalogFile struct {
	Products []models.ProductRecord `yaml:"products"`
}

// LoadFile reads a YAML catalogue of the form `products: [...]`.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(f.Products) == 0 {
		return nil, fmt.Errorf("catalog file %s has no products", path)
	}
	return FromProducts(f.Products)
}

func (c *Catalog) Lookup(id int) (models.ProductRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.ProductRecord{}, false
	}
	return c.products[i], true
}

// Products returns a copy in catalogue order.
func (c *Catalog) Products() []models.ProductRecord {
	out := make([]models.ProductRecord, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}
