package repository

import (
	"context"
	"time"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	AddProduct(ctx context.Context, data domain.Product) (product domain.Product, err error)
	GetProducts(ctx context.Context, query catalog.Query) (data []domain.Product, total int64, err error)
	GetProductByID(ctx context.Context, id string) (product domain.Product, err error)
	GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.Product, err error)
	UpdateProduct(ctx context.Context, id string, changes domain.ProductChanges) (product domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (product domain.Product, err error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, delta int64) (err error)
	CountProducts(ctx context.Context, criteria catalog.Criteria) (count int64, err error)
	CountDiscountedProducts(ctx context.Context) (count int64, err error)
	CountByCategory(ctx context.Context) (counts map[string]int64, err error)
	GetLowStockProducts(ctx context.Context, threshold int64, limit int64) (data []domain.Product, err error)
	GetImagePaths(ctx context.Context) (paths []string, err error)
}

type OrderRepository interface {
	// HandleTrx runs fn as one unit of work; fn must use the context it is given.
	HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error
	AddOrder(ctx context.Context, data domain.Order) (order domain.Order, err error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) (err error)
	GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, total int64, err error)
	GetOrderByID(ctx context.Context, id string) (order domain.Order, err error)
	UpdateOrderStatus(ctx context.Context, id string, status string, at time.Time) (order domain.Order, err error)
	UpdatePaymentStatus(ctx context.Context, id string, paymentStatus string, at time.Time) (order domain.Order, err error)
	CountOrders(ctx context.Context) (count int64, err error)
	CountByStatus(ctx context.Context) (counts map[string]int64, err error)
	GetRecentOrders(ctx context.Context, limit int64) (data []domain.Order, err error)
}

type UserRepository interface {
	AddUser(ctx context.Context, data domain.User) (user domain.User, err error)
	GetUserByID(ctx context.Context, id string) (user domain.User, err error)
	// GetUserByLogin matches login against the username or the email.
	GetUserByLogin(ctx context.Context, login string) (user domain.User, err error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (exists bool, err error)
	ExistsByRole(ctx context.Context, role string) (exists bool, err error)
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) (err error)
	CountUsers(ctx context.Context, role string) (count int64, err error)
}

type CartRepository interface {
	GetCartByUser(ctx context.Context, userID primitive.ObjectID) (cart domain.Cart, err error)
	// SaveCart upserts the single cart of cart.User.
	SaveCart(ctx context.Context, cart domain.Cart) (err error)
	DeleteCart(ctx context.Context, userID primitive.ObjectID) (err error)
}

type WishlistRepository interface {
	GetWishlistByUser(ctx context.Context, userID primitive.ObjectID) (wishlist domain.Wishlist, err error)
	SaveWishlist(ctx context.Context, wishlist domain.Wishlist) (err error)
}
