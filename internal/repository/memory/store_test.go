package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/repository"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.ProductRepository  = (*ProductRepository)(nil)
	_ repository.OrderRepository    = (*OrderRepository)(nil)
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.CartRepository     = (*CartRepository)(nil)
	_ repository.WishlistRepository = (*WishlistRepository)(nil)
)

func TestHandleTrx_RestoresOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := store.Products()

	p, err := products.AddProduct(ctx, domain.Product{Name: "Hoodie", StockQuantity: 3})
	require.NoError(t, err)

	failure := errors.New("boom")
	err = store.HandleTrx(ctx, func(ctx context.Context) error {
		require.NoError(t, products.IncrementStock(ctx, p.ID, -2))
		_, err := store.Orders().AddOrder(ctx, domain.Order{OrderNumber: "ORD-1"})
		require.NoError(t, err)
		return failure
	})
	assert.ErrorIs(t, err, failure)

	got, err := products.GetProductByID(ctx, p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.StockQuantity)

	count, err := store.Orders().CountOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetProducts_TotalIndependentOfWindow(t *testing.T) {
	ctx := context.Background()
	products := NewStore().Products()

	for i := 0; i < 25; i++ {
		category := "men"
		if i%5 == 0 {
			category = "women"
		}
		_, err := products.AddProduct(ctx, domain.Product{Name: fmt.Sprintf("P%02d", i), Category: category, Price: int64(i)})
		require.NoError(t, err)
	}

	for _, limit := range []int{1, 3, 7, 20} {
		for page := 1; page <= 4; page++ {
			q := catalog.Query{Criteria: catalog.Criteria{Category: "men"}, Sort: catalog.Sort{Field: "price"}, Page: page, Limit: limit}
			data, total, err := products.GetProducts(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, int64(20), total)

			expected := max(0, min(limit, 20-(page-1)*limit))
			assert.Len(t, data, expected)
		}
	}
}

func TestUserRepository_Duplicates(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	_, err := users.AddUser(ctx, domain.User{Username: "anna", Email: "anna@example.com"})
	require.NoError(t, err)

	_, err = users.AddUser(ctx, domain.User{Username: "other", Email: "anna@example.com"})
	assert.ErrorIs(t, err, errs.ErrUserAlreadyExists)

	u, err := users.GetUserByLogin(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, "anna", u.Username)
}
