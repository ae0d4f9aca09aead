package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_GetStats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	products := []domain.Product{
		{Name: "A", Category: "men", InStock: true, StockQuantity: 2, Discount: 10},
		{Name: "B", Category: "men", InStock: true, StockQuantity: 50, IsNew: true},
		{Name: "C", Category: "women", InStock: false, StockQuantity: 0},
		{Name: "D", Category: "accessories", InStock: true, StockQuantity: 4},
	}
	for _, p := range products {
		_, err := store.Products().AddProduct(ctx, p)
		require.NoError(t, err)
	}

	base := time.Now()
	for i := 0; i < 7; i++ {
		status := domain.OrderStatusPending
		if i%2 == 0 {
			status = domain.OrderStatusDelivered
		}
		_, err := store.Orders().AddOrder(ctx, domain.Order{OrderNumber: string(rune('a' + i)), Status: status, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	for _, u := range []domain.User{{Username: "a", Email: "a@x", Role: domain.RoleUser}, {Username: "b", Email: "b@x", Role: domain.RoleUser}, {Username: "root", Email: "r@x", Role: domain.RoleAdmin}} {
		_, err := store.Users().AddUser(ctx, u)
		require.NoError(t, err)
	}

	svc := CreateStatsService(store.Products(), store.Orders(), store.Users())
	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalProducts)
	assert.Equal(t, int64(7), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, map[string]int64{"men": 2, "women": 1, "accessories": 1}, stats.ProductsByCategory)
	assert.Equal(t, map[string]int64{domain.OrderStatusPending: 3, domain.OrderStatusDelivered: 4}, stats.OrdersByStatus)
	assert.Equal(t, int64(3), stats.InStockProducts)
	assert.Equal(t, int64(1), stats.OutOfStockProducts)
	assert.Equal(t, int64(1), stats.NewProducts)
	assert.Equal(t, int64(1), stats.DiscountedProducts)

	require.Len(t, stats.RecentOrders, 5)
	assert.Equal(t, "g", stats.RecentOrders[0].OrderNumber)

	require.Len(t, stats.LowStockProducts, 2)
	assert.Equal(t, "A", stats.LowStockProducts[0].Name)
}
