package dto

type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"omitempty,gte=1"`
}

type CartQuantityRequest struct {
	ItemID   string `param:"itemId"`
	Quantity int64  `json:"quantity" validate:"gte=1"`
}

type WishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
