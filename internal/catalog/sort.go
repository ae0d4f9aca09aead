package catalog

import (
	"cmp"
	"slices"

	"github.com/dmitryhil/vineweb/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortProducts orders products in place by s. Ties fall back to ascending id,
// the same secondary key the store query uses.
func SortProducts(products []domain.Product, s Sort) {
	// collators are not safe for concurrent use
	collator := collate.New(language.English)

	slices.SortStableFunc(products, func(a, b domain.Product) int {
		c := compareField(collator, a, b, s.Field)
		if s.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID.Hex(), b.ID.Hex())
	})
}

func compareField(collator *collate.Collator, a, b domain.Product, field string) int {
	switch field {
	case "name":
		return collator.CompareString(a.Name, b.Name)
	case "price":
		return cmp.Compare(a.Price, b.Price)
	case "originalPrice":
		return cmp.Compare(derefInt(a.OriginalPrice), derefInt(b.OriginalPrice))
	case "discount":
		return cmp.Compare(a.Discount, b.Discount)
	case "stockQuantity":
		return cmp.Compare(a.StockQuantity, b.StockQuantity)
	case "updatedAt":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// Window returns the page-th slice of limit items; out of range pages are empty.
func Window(products []domain.Product, page, limit int) []domain.Product {
	if page < 1 || limit < 1 {
		return []domain.Product{}
	}

	start := (page - 1) * limit
	if start >= len(products) {
		return []domain.Product{}
	}

	end := min(start+limit, len(products))
	return products[start:end]
}
