package memory

import (
	"context"
	"slices"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartRepository struct {
	store *Store
}

func (r *CartRepository) GetCartByUser(ctx context.Context, userID primitive.ObjectID) (domain.Cart, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cart, ok := r.store.carts[userID]
	if !ok {
		return domain.Cart{}, errs.ErrCartNotFound
	}

	cart.Items = slices.Clone(cart.Items)
	return cart, nil
}

func (r *CartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.carts[cart.User]; ok {
		cart.ID = existing.ID
	} else if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}

	cart.Items = slices.Clone(cart.Items)
	r.store.carts[cart.User] = cart

	return nil
}

func (r *CartRepository) DeleteCart(ctx context.Context, userID primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.carts, userID)
	return nil
}

type WishlistRepository struct {
	store *Store
}

func (r *WishlistRepository) GetWishlistByUser(ctx context.Context, userID primitive.ObjectID) (domain.Wishlist, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wishlist, ok := r.store.wishlists[userID]
	if !ok {
		return domain.Wishlist{}, errs.ErrWishlistNotFound
	}

	wishlist.Products = slices.Clone(wishlist.Products)
	return wishlist, nil
}

func (r *WishlistRepository) SaveWishlist(ctx context.Context, wishlist domain.Wishlist) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.wishlists[wishlist.User]; ok {
		wishlist.ID = existing.ID
	} else if wishlist.ID.IsZero() {
		wishlist.ID = primitive.NewObjectID()
	}

	wishlist.Products = slices.Clone(wishlist.Products)
	r.store.wishlists[wishlist.User] = wishlist

	return nil
}
