// Package mirror re-filters, re-sorts and re-paginates a page of products the
// client has already fetched. Filtering goes through catalog.Criteria so the
// client and the server agree on what a filter means.
package mirror

import (
	"math"
	"slices"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
)

const (
	NarrowViewportWidth = 768
	NarrowPageSize      = 4
	WidePageSize        = 12

	DefaultMinPrice = 0
	DefaultMaxPrice = 10000
)

const (
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
)

type Options struct {
	Search        string
	Category      string
	Size          string
	MinPrice      int64
	MaxPrice      int64
	SortBy        string
	Page          int
	ViewportWidth int
}

// DefaultOptions matches the storefront's initial state.
func DefaultOptions() Options {
	return Options{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		SortBy:   SortName,
		Page:     1,
	}
}

type View struct {
	Products   []domain.Product
	Page       int
	PerPage    int
	TotalPages int
	Matched    int
}

func PageSize(viewportWidth int) int {
	if viewportWidth <= NarrowViewportWidth {
		return NarrowPageSize
	}
	return WidePageSize
}

func (o Options) Criteria() catalog.Criteria {
	minPrice, maxPrice := o.MinPrice, o.MaxPrice
	category := o.Category
	if category == catalog.CategoryAll {
		category = ""
	}
	return catalog.Criteria{
		Category: category,
		Search:   o.Search,
		Sizes:    nonEmpty(o.Size),
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	}
}

// SortFor maps a storefront sort option onto a catalog sort. Unknown options
// keep the fetched order.
func SortFor(option string) (catalog.Sort, bool) {
	switch option {
	case SortName:
		return catalog.Sort{Field: "name"}, true
	case SortPriceLow:
		return catalog.Sort{Field: "price"}, true
	case SortPriceHigh:
		return catalog.Sort{Field: "price", Desc: true}, true
	case SortNewest:
		return catalog.Sort{Field: "createdAt", Desc: true}, true
	default:
		return catalog.Sort{}, false
	}
}

// Apply never mutates products.
func Apply(products []domain.Product, opts Options) View {
	filtered := opts.Criteria().Filter(slices.Clone(products))

	if s, ok := SortFor(opts.SortBy); ok {
		catalog.SortProducts(filtered, s)
	}

	perPage := PageSize(opts.ViewportWidth)
	page := max(opts.Page, 1)

	return View{
		Products:   catalog.Window(filtered, page, perPage),
		Page:       page,
		PerPage:    perPage,
		TotalPages: int(math.Ceil(float64(len(filtered)) / float64(perPage))),
		Matched:    len(filtered),
	}
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
