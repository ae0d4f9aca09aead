package dto

import "github.com/dmitryhil/vineweb/internal/domain"

type StatsResponse struct {
	TotalProducts      int64            `json:"totalProducts"`
	TotalOrders        int64            `json:"totalOrders"`
	TotalUsers         int64            `json:"totalUsers"`
	ProductsByCategory map[string]int64 `json:"productsByCategory"`
	OrdersByStatus     map[string]int64 `json:"ordersByStatus"`
	RecentOrders       []domain.Order   `json:"recentOrders"`
	LowStockProducts   []domain.Product `json:"lowStockProducts"`
	InStockProducts    int64            `json:"inStockProducts"`
	OutOfStockProducts int64            `json:"outOfStockProducts"`
	NewProducts        int64            `json:"newProducts"`
	DiscountedProducts int64            `json:"discountedProducts"`
}
