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

type WishlistServiceImpl struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

func CreateWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &WishlistServiceImpl{wishlistRepo: wishlistRepo, productRepo: productRepo, now: time.Now}
}

func (s *WishlistServiceImpl) GetWishlist(ctx context.Context, userID string) (res dto.WishlistResponse, err error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return
	}

	wishlist, err := s.wishlistRepo.GetWishlistByUser(ctx, uid)
	if errors.Is(err, errs.ErrWishlistNotFound) {
		return dto.WishlistResponse{Products: []domain.Product{}}, nil
	}
	if err != nil {
		return
	}

	return s.populate(ctx, wishlist)
}

func (s *WishlistServiceImpl) AddProduct(ctx context.Context, userID string, req dto.WishlistRequest) (res dto.WishlistResponse, err error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return
	}

	wishlist, err := s.wishlistRepo.GetWishlistByUser(ctx, uid)
	if errors.Is(err, errs.ErrWishlistNotFound) {
		wishlist, err = domain.Wishlist{User: uid, Products: []primitive.ObjectID{}}, nil
	}
	if err != nil {
		return
	}

	if !slices.Contains(wishlist.Products, product.ID) {
		wishlist.Products = append(wishlist.Products, product.ID)
	}

	return s.save(ctx, wishlist)
}

// RemoveProduct is a no-op for products not on the list; only a missing
// wishlist is an error.
func (s *WishlistServiceImpl) RemoveProduct(ctx context.Context, userID string, productID string) (res dto.WishlistResponse, err error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return
	}

	wishlist, err := s.wishlistRepo.GetWishlistByUser(ctx, uid)
	if err != nil {
		return
	}

	if id, err := primitive.ObjectIDFromHex(productID); err == nil {
		wishlist.Products = slices.DeleteFunc(wishlist.Products, func(p primitive.ObjectID) bool { return p == id })
	}

	return s.save(ctx, wishlist)
}

func (s *WishlistServiceImpl) save(ctx context.Context, wishlist domain.Wishlist) (res dto.WishlistResponse, err error) {
	wishlist.UpdatedAt = s.now()
	if err = s.wishlistRepo.SaveWishlist(ctx, wishlist); err != nil {
		return
	}

	return s.populate(ctx, wishlist)
}

func (s *WishlistServiceImpl) populate(ctx context.Context, wishlist domain.Wishlist) (res dto.WishlistResponse, err error) {
	products, err := s.productRepo.GetProductsByIDs(ctx, wishlist.Products)
	if err != nil {
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	return dto.WishlistResponse{Products: products}, nil
}
