package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"slices"
	"strings"
	"time"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/infrastructure/cache"
	"github.com/dmitryhil/vineweb/internal/infrastructure/message-queue/kafka"
	"github.com/dmitryhil/vineweb/internal/infrastructure/storage"
	"github.com/dmitryhil/vineweb/internal/repository"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/rs/zerolog/log"
)

const (
	productImagesField = "images"
	uploadImageField   = "image"
	orphanMinAge       = time.Hour
)

type ProductServiceImpl struct {
	repo      repository.ProductRepository
	cache     cache.ProductCache
	images    storage.ImageStore
	publisher kafka.EventPublisher
	config    *config.Config
	now       func() time.Time
}

func CreateProductService(repo repository.ProductRepository, cache cache.ProductCache, images storage.ImageStore, publisher kafka.EventPublisher, config *config.Config) ProductService {
	return &ProductServiceImpl{
		repo:      repo,
		cache:     cache,
		images:    images,
		publisher: publisher,
		config:    config,
		now:       time.Now,
	}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, query catalog.Query) (res dto.ProductListResponse, err error) {
	if cached, ok := s.cache.GetProductList(ctx, query); ok {
		return cached, nil
	}

	products, total, err := s.repo.GetProducts(ctx, query)
	if err != nil {
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	res = dto.ProductListResponse{
		Products:   products,
		Pagination: pkgdto.NewPagination(query.Page, query.Limit, total),
	}
	s.cache.SetProductList(ctx, query, res)

	return res, nil
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}

	product, err = s.repo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	s.cache.SetProduct(ctx, product)

	return product, nil
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest) (product domain.Product, err error) {
	if missing := req.MissingRequired(); len(missing) > 0 {
		return product, fmt.Errorf("%w: missing required fields: %s", errs.ErrValidation, strings.Join(missing, ", "))
	}

	paths, err := s.storeImages(ctx, req.Images)
	if err != nil {
		return
	}

	now := s.now()
	data := domain.Product{
		Name:          *req.Name,
		Description:   *req.Description,
		Price:         *req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      *req.Category,
		Subcategory:   *req.Subcategory,
		Sizes:         slices.Clone(*req.Sizes),
		Images:        paths,
		InStock:       true,
		Tags:          []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if data.Sizes == nil {
		data.Sizes = []string{}
	}
	if len(paths) > 0 {
		data.Image = paths[0]
	}
	if req.Gender != nil && *req.Gender != "" {
		gender := *req.Gender
		data.Gender = &gender
	}
	if req.IsNew != nil {
		data.IsNew = *req.IsNew
	}
	if req.Discount != nil {
		data.Discount = *req.Discount
	}
	if req.InStock != nil {
		data.InStock = *req.InStock
	}
	if req.StockQuantity != nil {
		data.StockQuantity = *req.StockQuantity
	}
	if req.Tags != nil {
		data.Tags = slices.Clone(*req.Tags)
	}

	product, err = s.repo.AddProduct(ctx, data)
	if err != nil {
		s.deleteImages(ctx, paths)
		return
	}

	s.invalidate(ctx, "")
	publishAsync(ctx, s.publisher, kafka.EventProductCreated, product.ID.Hex(), product)

	return product, nil
}

// UpdateProduct applies only the fields present in req. New images replace
// the whole stored set; the previous files are removed afterwards.
func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, req dto.ProductRequest) (product domain.Product, err error) {
	existing, err := s.repo.GetProductByID(ctx, req.ID)
	if err != nil {
		return
	}

	changes := domain.ProductChanges{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Gender:        req.Gender,
		Sizes:         req.Sizes,
		IsNew:         req.IsNew,
		Discount:      req.Discount,
		InStock:       req.InStock,
		StockQuantity: req.StockQuantity,
		Tags:          req.Tags,
		UpdatedAt:     s.now(),
	}

	var paths []string
	if len(req.Images) > 0 {
		paths, err = s.storeImages(ctx, req.Images)
		if err != nil {
			return
		}
		changes.Images = &paths
		changes.Image = &paths[0]
	}

	product, err = s.repo.UpdateProduct(ctx, req.ID, changes)
	if err != nil {
		s.deleteImages(ctx, paths)
		return
	}

	if len(paths) > 0 {
		s.deleteImages(ctx, existing.StoredImages())
	}

	s.invalidate(ctx, req.ID)
	publishAsync(ctx, s.publisher, kafka.EventProductUpdated, product.ID.Hex(), product)

	return product, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (product domain.Product, err error) {
	product, err = s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return
	}

	s.deleteImages(ctx, product.StoredImages())
	s.invalidate(ctx, id)
	publishAsync(ctx, s.publisher, kafka.EventProductDeleted, id, product)

	return product, nil
}

func (s *ProductServiceImpl) UploadImage(ctx context.Context, fh *multipart.FileHeader) (res dto.UploadResponse, err error) {
	if fh == nil {
		return res, errs.ErrNoFileUploaded
	}

	if err = storage.ValidateImage(fh, s.config.UploadConfig.MaxFileBytes); err != nil {
		return
	}

	img, err := s.images.Save(ctx, uploadImageField, fh)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UploadImage").Msg("")
		return
	}

	return dto.UploadResponse{Filename: img.Filename, Path: img.Path, Size: img.Size}, nil
}

// SweepOrphanedImages removes stored images that no product references and
// that are older than an hour, so uploads still being attached survive.
func (s *ProductServiceImpl) SweepOrphanedImages(ctx context.Context) (removed int, err error) {
	referenced, err := s.repo.GetImagePaths(ctx)
	if err != nil {
		return
	}

	stored, err := s.images.List(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SweepOrphanedImages").Msg("")
		return
	}

	cutoff := s.now().Add(-orphanMinAge)
	for _, img := range stored {
		if img.ModTime.After(cutoff) || slices.Contains(referenced, img.Path) {
			continue
		}

		if err := s.images.Delete(ctx, img.Path); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "SweepOrphanedImages").Str("path", img.Path).Msg("")
			continue
		}
		removed++
	}

	return removed, nil
}

func (s *ProductServiceImpl) SeedSampleProducts(ctx context.Context) (err error) {
	count, err := s.repo.CountProducts(ctx, catalog.Criteria{})
	if err != nil || count > 0 {
		return
	}

	now := s.now()
	for _, p := range sampleProducts() {
		p.CreatedAt, p.UpdatedAt = now, now
		if _, err = s.repo.AddProduct(ctx, p); err != nil {
			return
		}
	}

	s.invalidate(ctx, "")
	log.Ctx(ctx).Info().Str("component", "SeedSampleProducts").Int("count", len(sampleProducts())).Msg("sample products created")

	return nil
}

// storeImages validates every file before saving any of them. On a failed
// save the files already written are removed.
func (s *ProductServiceImpl) storeImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > 5 {
		return nil, errs.ErrTooManyFiles
	}

	for _, fh := range files {
		if err := storage.ValidateImage(fh, s.config.UploadConfig.MaxFileBytes); err != nil {
			return nil, err
		}
	}

	paths := []string{}
	for _, fh := range files {
		img, err := s.images.Save(ctx, productImagesField, fh)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "storeImages").Msg("")
			s.deleteImages(ctx, paths)
			return nil, err
		}
		paths = append(paths, img.Path)
	}

	return paths, nil
}

func (s *ProductServiceImpl) deleteImages(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.images.Delete(ctx, p); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "deleteImages").Str("path", p).Msg("")
		}
	}
}

func (s *ProductServiceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil && !errors.Is(err, context.Canceled) {
		log.Ctx(ctx).Error().Err(err).Str("component", "invalidate").Msg("")
	}
}
