package catalog

import (
	"fmt"
	"sort"
	"strings"

	"cart-service/internal/models"
)

// Catalog is a read-only in-memory product lookup. It is built once at
// startup, either from the embedded seed or from the database, and never
// mutated afterwards, so reads need no locking.
type Catalog struct {
	products []models.Product
	byID     map[string]*models.Product
}

// New builds a catalog from a product slice. Insertion order is preserved
// for List and for category first-occurrence ordering.
func New(products []models.Product) *Catalog {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byID:     make(map[string]*models.Product, len(products)),
	}
	copy(c.products, products)
	for i := range c.products {
		c.byID[c.products[i].ID] = &c.products[i]
	}
	return c
}

// FindByID returns the product with the given id.
func (c *Catalog) FindByID(id string) (*models.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	return p, nil
}

// List returns all products in catalog order.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// DistinctCategories returns category names deduplicated, ordered by first
// occurrence in the catalog.
func (c *Catalog) DistinctCategories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Sort options for Filter.
const (
	SortPopularity = "popularity"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRating     = "rating"
)

// Query narrows and orders the product list. Zero values leave the
// corresponding dimension unfiltered.
type Query struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
}

// Filter returns the products matching the query. Sorting is stable, so
// ties keep catalog order.
func (c *Catalog) Filter(q Query) []models.Product {
	var out []models.Product
	for _, p := range c.products {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if p.Price < q.MinPrice {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}

	return out
}
