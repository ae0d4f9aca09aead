package dto

import "github.com/dmitryhil/vineweb/internal/domain"

// CartItemResponse has the product populated; Product is nil when the
// referenced product no longer exists.
type CartItemResponse struct {
	ID       string          `json:"id"`
	Product  *domain.Product `json:"product"`
	Size     string          `json:"size"`
	Quantity int64           `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
}

type WishlistResponse struct {
	Products []domain.Product `json:"products"`
}
