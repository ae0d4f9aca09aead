// Package memory is an in-process implementation of the repository contracts.
// Filtering and ordering go through the catalog package, so results match the
// document-store adapter.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/dmitryhil/vineweb/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu         sync.Mutex
	noRollback bool
	products   map[primitive.ObjectID]domain.Product
	orders     map[primitive.ObjectID]domain.Order
	users      map[primitive.ObjectID]domain.User
	carts      map[primitive.ObjectID]domain.Cart
	wishlists  map[primitive.ObjectID]domain.Wishlist
}

func NewStore() *Store {
	return &Store{
		products:  map[primitive.ObjectID]domain.Product{},
		orders:    map[primitive.ObjectID]domain.Order{},
		users:     map[primitive.ObjectID]domain.User{},
		carts:     map[primitive.ObjectID]domain.Cart{},
		wishlists: map[primitive.ObjectID]domain.Wishlist{},
	}
}

type snapshot struct {
	products map[primitive.ObjectID]domain.Product
	orders   map[primitive.ObjectID]domain.Order
}

// WithoutTransactions makes HandleTrx run fn directly, like a standalone
// document store.
func (s *Store) WithoutTransactions() *Store {
	s.noRollback = true
	return s
}

// HandleTrx restores products and orders when fn fails. It does not isolate
// fn from concurrent writers.
func (s *Store) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.noRollback {
		return fn(ctx)
	}

	s.mu.Lock()
	snap := snapshot{products: maps.Clone(s.products), orders: maps.Clone(s.orders)}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.products = snap.products
		s.orders = snap.orders
		s.mu.Unlock()
		return err
	}

	return nil
}

func (s *Store) Products() *ProductRepository {
	return &ProductRepository{store: s}
}

func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{store: s}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Carts() *CartRepository {
	return &CartRepository{store: s}
}

func (s *Store) Wishlists() *WishlistRepository {
	return &WishlistRepository{store: s}
}

func cloneProduct(p domain.Product) domain.Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Images = slices.Clone(p.Images)
	p.Tags = slices.Clone(p.Tags)
	return p
}
