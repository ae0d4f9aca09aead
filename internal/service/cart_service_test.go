package service

import (
	"context"
	"testing"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/repository/memory"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartService(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := CreateCartService(store.Carts(), store.Products())
	user := primitive.NewObjectID().Hex()

	shirt, err := store.Products().AddProduct(ctx, domain.Product{Name: "Shirt", Price: 900})
	require.NoError(t, err)

	empty, err := svc.GetCart(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.NotNil(t, empty.Items)

	_, err = svc.AddItem(ctx, user, dto.CartItemRequest{ProductID: shirt.ID.Hex(), Size: "M"})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, user, dto.CartItemRequest{ProductID: shirt.ID.Hex(), Size: "M", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(3), cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "Shirt", cart.Items[0].Product.Name)

	cart, err = svc.AddItem(ctx, user, dto.CartItemRequest{ProductID: shirt.ID.Hex(), Size: "L"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	_, err = svc.AddItem(ctx, user, dto.CartItemRequest{ProductID: primitive.NewObjectID().Hex(), Size: "M"})
	assert.ErrorIs(t, err, errs.ErrProductNotFound)

	itemID := cart.Items[0].ID
	cart, err = svc.UpdateItem(ctx, user, dto.CartQuantityRequest{ItemID: itemID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)

	_, err = svc.UpdateItem(ctx, user, dto.CartQuantityRequest{ItemID: primitive.NewObjectID().Hex(), Quantity: 1})
	assert.ErrorIs(t, err, errs.ErrCartItemNotFound)

	cart, err = svc.RemoveItem(ctx, user, itemID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "L", cart.Items[0].Size)

	require.NoError(t, svc.ClearCart(ctx, user))
	cart, err = svc.GetCart(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, user, itemID)
	assert.ErrorIs(t, err, errs.ErrCartNotFound)

	_, err = svc.GetCart(ctx, "not-a-user")
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestWishlistService(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := CreateWishlistService(store.Wishlists(), store.Products())
	user := primitive.NewObjectID().Hex()

	bag, err := store.Products().AddProduct(ctx, domain.Product{Name: "Bag"})
	require.NoError(t, err)

	_, err = svc.RemoveProduct(ctx, user, bag.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrWishlistNotFound)

	_, err = svc.AddProduct(ctx, user, dto.WishlistRequest{ProductID: bag.ID.Hex()})
	require.NoError(t, err)
	res, err := svc.AddProduct(ctx, user, dto.WishlistRequest{ProductID: bag.ID.Hex()})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "Bag", res.Products[0].Name)

	_, err = svc.AddProduct(ctx, user, dto.WishlistRequest{ProductID: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, errs.ErrProductNotFound)

	res, err = svc.RemoveProduct(ctx, user, bag.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, res.Products)

	res, err = svc.GetWishlist(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.NotNil(t, res.Products)
}
