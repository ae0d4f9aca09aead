package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/repository"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

func CreateCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &CartServiceImpl{cartRepo: cartRepo, productRepo: productRepo, now: time.Now}
}

func (s *CartServiceImpl) GetCart(ctx context.Context, userID string) (res dto.CartResponse, err error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return
	}

	cart, err := s.cartRepo.GetCartByUser(ctx, uid)
	if errors.Is(err, errs.ErrCartNotFound) {
		return dto.CartResponse{Items: []dto.CartItemResponse{}}, nil
	}
	if err != nil {
		return
	}

	return s.populate(ctx, cart)
}

// AddItem merges into an existing line with the same product and size.
func (s *CartServiceImpl) AddItem(ctx context.Context, userID string, req dto.CartItemRequest) (res dto.CartResponse, err error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.cartRepo.GetCartByUser(ctx, uid)
	if errors.Is(err, errs.ErrCartNotFound) {
		cart, err = domain.Cart{User: uid, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return
	}

	idx := slices.IndexFunc(cart.Items, func(item domain.CartItem) bool {
		return item.Product == product.ID && item.Size == req.Size
	})
	if idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:       primitive.NewObjectID(),
			Product:  product.ID,
			Size:     req.Size,
			Quantity: quantity,
		})
	}

	return s.save(ctx, cart)
}

func (s *CartServiceImpl) UpdateItem(ctx context.Context, userID string, req dto.CartQuantityRequest) (res dto.CartResponse, err error) {
	return s.modifyItem(ctx, userID, req.ItemID, func(cart *domain.Cart, idx int) {
		cart.Items[idx].Quantity = req.Quantity
	})
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, userID string, itemID string) (res dto.CartResponse, err error) {
	return s.modifyItem(ctx, userID, itemID, func(cart *domain.Cart, idx int) {
		cart.Items = slices.Delete(cart.Items, idx, idx+1)
	})
}

func (s *CartServiceImpl) ClearCart(ctx context.Context, userID string) (err error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return
	}

	return s.cartRepo.DeleteCart(ctx, uid)
}

func (s *CartServiceImpl) modifyItem(ctx context.Context, userID string, itemID string, fn func(cart *domain.Cart, idx int)) (res dto.CartResponse, err error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return
	}

	cart, err := s.cartRepo.GetCartByUser(ctx, uid)
	if err != nil {
		return
	}

	id, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return res, errs.ErrCartItemNotFound
	}

	idx := slices.IndexFunc(cart.Items, func(item domain.CartItem) bool { return item.ID == id })
	if idx < 0 {
		return res, errs.ErrCartItemNotFound
	}

	fn(&cart, idx)

	return s.save(ctx, cart)
}

func (s *CartServiceImpl) save(ctx context.Context, cart domain.Cart) (res dto.CartResponse, err error) {
	cart.UpdatedAt = s.now()
	if err = s.cartRepo.SaveCart(ctx, cart); err != nil {
		return
	}

	return s.populate(ctx, cart)
}

func (s *CartServiceImpl) populate(ctx context.Context, cart domain.Cart) (res dto.CartResponse, err error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.Product)
	}

	products, err := s.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return
	}

	byID := make(map[primitive.ObjectID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	res.Items = make([]dto.CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		line := dto.CartItemResponse{ID: item.ID.Hex(), Size: item.Size, Quantity: item.Quantity}
		if p, ok := byID[item.Product]; ok {
			line.Product = &p
		}
		res.Items = append(res.Items, line)
	}

	return res, nil
}

func parseUserID(userID string) (primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, errs.ErrInvalidToken
	}
	return uid, nil
}
