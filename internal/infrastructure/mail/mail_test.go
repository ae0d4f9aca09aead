package mail

import (
	"testing"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderConfirmationBody(t *testing.T) {
	order := domain.Order{
		OrderNumber: "ORD-1-ABCDE",
		User:        domain.Customer{Name: "Ana"},
		Items: []domain.OrderItem{
			{Name: "Shirt", Size: "M", Price: 1500, Quantity: 2},
			{Name: "Belt", Price: 900, Quantity: 1},
		},
		TotalAmount: 3900,
	}

	body := OrderConfirmationBody(order)

	assert.Contains(t, body, "Hello Ana")
	assert.Contains(t, body, "ORD-1-ABCDE")
	assert.Contains(t, body, "2 x Shirt (M)  3000")
	assert.Contains(t, body, "1 x Belt  900")
	assert.Contains(t, body, "Total: 3900")
}
