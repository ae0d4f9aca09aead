package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/dmitryhil/vineweb/internal/domain"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository struct {
	store *Store
}

func (r *OrderRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.store.HandleTrx(ctx, fn)
}

func (r *OrderRepository) AddOrder(ctx context.Context, data domain.Order) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	data.Items = slices.Clone(data.Items)
	r.store.orders[data.ID] = data

	return data, nil
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.orders, id)
	return nil
}

// newestFirst orders by createdAt then id, both descending.
func (r *OrderRepository) newestFirst() []domain.Order {
	orders := make([]domain.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		orders = append(orders, o)
	}

	slices.SortFunc(orders, func(a, b domain.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID.Hex(), a.ID.Hex())
	})

	return orders
}

func (r *OrderRepository) GetOrders(ctx context.Context, filter pkgdto.Filter) ([]domain.Order, int64, error) {
	r.store.mu.Lock()
	orders := r.newestFirst()
	r.store.mu.Unlock()

	matched := []domain.Order{}
	for _, o := range orders {
		if filter.Status == "" || o.Status == filter.Status {
			matched = append(matched, o)
		}
	}

	start := int(filter.Offset())
	if start >= len(matched) {
		return []domain.Order{}, int64(len(matched)), nil
	}
	end := min(start+filter.Limit, len(matched))

	return matched[start:end], int64(len(matched)), nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Order{}, errs.ErrOrderNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[orderID]
	if !ok {
		return domain.Order{}, errs.ErrOrderNotFound
	}

	return o, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status string, at time.Time) (domain.Order, error) {
	return r.update(id, func(o *domain.Order) {
		o.Status = status
		o.UpdatedAt = at
	})
}

func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus string, at time.Time) (domain.Order, error) {
	return r.update(id, func(o *domain.Order) {
		o.PaymentStatus = paymentStatus
		o.UpdatedAt = at
	})
}

func (r *OrderRepository) update(id string, fn func(o *domain.Order)) (domain.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Order{}, errs.ErrOrderNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.store.orders[orderID]
	if !ok {
		return domain.Order{}, errs.ErrOrderNotFound
	}

	fn(&o)
	r.store.orders[orderID] = o

	return o, nil
}

func (r *OrderRepository) CountOrders(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return int64(len(r.store.orders)), nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	counts := map[string]int64{}
	for _, o := range r.store.orders {
		counts[o.Status]++
	}

	return counts, nil
}

func (r *OrderRepository) GetRecentOrders(ctx context.Context, limit int64) ([]domain.Order, error) {
	r.store.mu.Lock()
	orders := r.newestFirst()
	r.store.mu.Unlock()

	if int64(len(orders)) > limit {
		orders = orders[:limit]
	}

	return orders, nil
}
