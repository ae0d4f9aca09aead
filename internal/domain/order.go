package domain

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodOnline = "online"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

var OrderStatuses = []string{
	OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
	OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
}

var PaymentStatuses = []string{PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed}

func IsValidOrderStatus(status string) bool {
	return slices.Contains(OrderStatuses, status)
}

func IsValidPaymentStatus(status string) bool {
	return slices.Contains(PaymentStatuses, status)
}

type Address struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
}

// Customer is copied into the order at creation time.
type Customer struct {
	Name    string  `bson:"name" json:"name"`
	Email   string  `bson:"email" json:"email"`
	Phone   string  `bson:"phone" json:"phone"`
	Address Address `bson:"address" json:"address"`
}

type OrderItem struct {
	Product  *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	Name     string              `bson:"name" json:"name"`
	Price    int64               `bson:"price" json:"price"`
	Size     string              `bson:"size" json:"size"`
	Quantity int64               `bson:"quantity" json:"quantity"`
	Image    string              `bson:"image,omitempty" json:"image,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber   string             `bson:"orderNumber" json:"orderNumber"`
	User          Customer           `bson:"user" json:"user"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   int64              `bson:"totalAmount" json:"totalAmount"`
	Status        string             `bson:"status" json:"status"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (o Order) ItemsTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * item.Quantity
	}
	return total
}
