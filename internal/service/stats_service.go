package service

import (
	"context"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/repository"
)

const (
	lowStockThreshold = 5
	lowStockLimit     = 10
	recentOrdersLimit = 5
)

type StatsServiceImpl struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
}

func CreateStatsService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository, userRepo repository.UserRepository) StatsService {
	return &StatsServiceImpl{productRepo: productRepo, orderRepo: orderRepo, userRepo: userRepo}
}

func (s *StatsServiceImpl) GetStats(ctx context.Context) (res dto.StatsResponse, err error) {
	yes, no := true, false

	if res.TotalProducts, err = s.productRepo.CountProducts(ctx, catalog.Criteria{}); err != nil {
		return
	}
	if res.InStockProducts, err = s.productRepo.CountProducts(ctx, catalog.Criteria{InStock: &yes}); err != nil {
		return
	}
	if res.OutOfStockProducts, err = s.productRepo.CountProducts(ctx, catalog.Criteria{InStock: &no}); err != nil {
		return
	}
	if res.NewProducts, err = s.productRepo.CountProducts(ctx, catalog.Criteria{IsNew: &yes}); err != nil {
		return
	}
	if res.DiscountedProducts, err = s.productRepo.CountDiscountedProducts(ctx); err != nil {
		return
	}
	if res.ProductsByCategory, err = s.productRepo.CountByCategory(ctx); err != nil {
		return
	}
	if res.LowStockProducts, err = s.productRepo.GetLowStockProducts(ctx, lowStockThreshold, lowStockLimit); err != nil {
		return
	}

	if res.TotalOrders, err = s.orderRepo.CountOrders(ctx); err != nil {
		return
	}
	if res.OrdersByStatus, err = s.orderRepo.CountByStatus(ctx); err != nil {
		return
	}
	if res.RecentOrders, err = s.orderRepo.GetRecentOrders(ctx, recentOrdersLimit); err != nil {
		return
	}

	if res.TotalUsers, err = s.userRepo.CountUsers(ctx, domain.RoleUser); err != nil {
		return
	}

	if res.LowStockProducts == nil {
		res.LowStockProducts = []domain.Product{}
	}
	if res.RecentOrders == nil {
		res.RecentOrders = []domain.Order{}
	}

	return res, nil
}
