package service

import (
	"context"
	"mime/multipart"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
)

type ProductService interface {
	GetProducts(ctx context.Context, query catalog.Query) (res dto.ProductListResponse, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	AddProduct(ctx context.Context, req dto.ProductRequest) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, req dto.ProductRequest) (product domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (product domain.Product, err error)
	UploadImage(ctx context.Context, fh *multipart.FileHeader) (res dto.UploadResponse, err error)
	SweepOrphanedImages(ctx context.Context) (removed int, err error)
	SeedSampleProducts(ctx context.Context) (err error)
}

type OrderService interface {
	AddOrder(ctx context.Context, req dto.OrderRequest) (order domain.Order, err error)
	GetOrders(ctx context.Context, filter pkgdto.Filter) (res dto.OrderListResponse, err error)
	GetOrderByID(ctx context.Context, id string) (order domain.Order, err error)
	UpdateOrderStatus(ctx context.Context, req dto.OrderStatusRequest) (order domain.Order, err error)
	UpdatePaymentStatus(ctx context.Context, req dto.PaymentStatusRequest) (order domain.Order, err error)
}

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error)
	Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error)
	GetUserByID(ctx context.Context, id string) (res dto.UserResponse, err error)
	SeedAdmin(ctx context.Context, seed config.SeedConfig) (err error)
}

type CartService interface {
	GetCart(ctx context.Context, userID string) (res dto.CartResponse, err error)
	AddItem(ctx context.Context, userID string, req dto.CartItemRequest) (res dto.CartResponse, err error)
	UpdateItem(ctx context.Context, userID string, req dto.CartQuantityRequest) (res dto.CartResponse, err error)
	RemoveItem(ctx context.Context, userID string, itemID string) (res dto.CartResponse, err error)
	ClearCart(ctx context.Context, userID string) (err error)
}

type WishlistService interface {
	GetWishlist(ctx context.Context, userID string) (res dto.WishlistResponse, err error)
	AddProduct(ctx context.Context, userID string, req dto.WishlistRequest) (res dto.WishlistResponse, err error)
	RemoveProduct(ctx context.Context, userID string, productID string) (res dto.WishlistResponse, err error)
}

type StatsService interface {
	GetStats(ctx context.Context) (res dto.StatsResponse, err error)
}
