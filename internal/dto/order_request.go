package dto

type AddressRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

type CustomerRequest struct {
	Name    string         `json:"name" validate:"required"`
	Email   string         `json:"email" validate:"required,email"`
	Phone   string         `json:"phone" validate:"required"`
	Address AddressRequest `json:"address"`
}

type OrderItemRequest struct {
	Product  string `json:"product"`
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	Size     string `json:"size"`
	Quantity int64  `json:"quantity" validate:"gte=1"`
	Image    string `json:"image"`
}

type OrderRequest struct {
	User          CustomerRequest    `json:"user"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount   int64              `json:"totalAmount" validate:"gte=0"`
	PaymentMethod string             `json:"paymentMethod" validate:"omitempty,oneof=cash card online"`
	Notes         string             `json:"notes"`
}

type OrderStatusRequest struct {
	ID     string `param:"id"`
	Status string `json:"status" validate:"required"`
}

type PaymentStatusRequest struct {
	ID            string `param:"id"`
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}
