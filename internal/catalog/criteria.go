// Package catalog holds the product filter predicate shared by the document
// store query adapter and the in-memory adapters.
package catalog

import (
	"slices"
	"strings"

	"github.com/dmitryhil/vineweb/internal/domain"
)

// CategoryAll disables the category constraint.
const CategoryAll = "all"

// Criteria is AND-composed: zero values impose no constraint.
type Criteria struct {
	Category    string
	Subcategory string
	Gender      string
	Search      string
	MinPrice    *int64
	MaxPrice    *int64
	Sizes       []string
	IsNew       *bool
	InStock     *bool
}

func (c Criteria) IsEmpty() bool {
	return c.Category == "" && c.Subcategory == "" && c.Gender == "" && c.Search == "" &&
		c.MinPrice == nil && c.MaxPrice == nil && len(c.Sizes) == 0 && c.IsNew == nil && c.InStock == nil
}

// Match reports whether p satisfies every constraint in c. Search is a
// case-insensitive substring match over name, description and tags.
func (c Criteria) Match(p domain.Product) bool {
	if c.Category != "" && p.Category != c.Category {
		return false
	}

	if c.Subcategory != "" && p.Subcategory != c.Subcategory {
		return false
	}

	if c.Gender != "" && (p.Gender == nil || *p.Gender != c.Gender) {
		return false
	}

	if c.Search != "" && !matchesSearch(p, c.Search) {
		return false
	}

	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}

	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}

	if len(c.Sizes) > 0 && !slices.ContainsFunc(p.Sizes, func(size string) bool {
		return slices.Contains(c.Sizes, size)
	}) {
		return false
	}

	if c.IsNew != nil && p.IsNew != *c.IsNew {
		return false
	}

	if c.InStock != nil && p.InStock != *c.InStock {
		return false
	}

	return true
}

// Filter returns the products matching c, preserving order.
func (c Criteria) Filter(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if c.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesSearch(p domain.Product, search string) bool {
	needle := strings.ToLower(search)

	if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}

	return slices.ContainsFunc(p.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	})
}
