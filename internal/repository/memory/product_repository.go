package memory

import (
	"context"
	"slices"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) all() []domain.Product {
	products := make([]domain.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		products = append(products, cloneProduct(p))
	}
	return products
}

func (r *ProductRepository) AddProduct(ctx context.Context, data domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	r.store.products[data.ID] = cloneProduct(data)

	return cloneProduct(data), nil
}

func (r *ProductRepository) GetProducts(ctx context.Context, query catalog.Query) ([]domain.Product, int64, error) {
	r.store.mu.Lock()
	products := r.all()
	r.store.mu.Unlock()

	matched := query.Criteria.Filter(products)
	catalog.SortProducts(matched, query.Sort)

	return slices.Clone(catalog.Window(matched, query.Page, query.Limit)), int64(len(matched)), nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrProductNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[productID]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}

	return cloneProduct(p), nil
}

func (r *ProductRepository) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products := []domain.Product{}
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			products = append(products, cloneProduct(p))
		}
	}

	return products, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, id string, changes domain.ProductChanges) (domain.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrProductNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[productID]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}

	changes.Apply(&p)
	r.store.products[productID] = p

	return cloneProduct(p), nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) (domain.Product, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrProductNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[productID]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}
	delete(r.store.products, productID)

	return p, nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, delta int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok {
		return errs.ErrProductNotFound
	}

	p.StockQuantity += delta
	r.store.products[id] = p

	return nil
}

func (r *ProductRepository) CountProducts(ctx context.Context, criteria catalog.Criteria) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return int64(len(criteria.Filter(r.all()))), nil
}

func (r *ProductRepository) CountDiscountedProducts(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, p := range r.store.products {
		if p.Discount > 0 {
			count++
		}
	}

	return count, nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	counts := map[string]int64{}
	for _, p := range r.store.products {
		counts[p.Category]++
	}

	return counts, nil
}

func (r *ProductRepository) GetLowStockProducts(ctx context.Context, threshold int64, limit int64) ([]domain.Product, error) {
	r.store.mu.Lock()
	products := r.all()
	r.store.mu.Unlock()

	low := []domain.Product{}
	for _, p := range products {
		if p.InStock && p.StockQuantity < threshold {
			low = append(low, p)
		}
	}
	catalog.SortProducts(low, catalog.Sort{Field: "stockQuantity"})

	if int64(len(low)) > limit {
		low = low[:limit]
	}

	return low, nil
}

func (r *ProductRepository) GetImagePaths(ctx context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var paths []string
	for _, p := range r.store.products {
		paths = append(paths, p.StoredImages()...)
	}

	return paths, nil
}
