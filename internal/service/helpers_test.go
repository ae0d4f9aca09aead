package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/infrastructure/cache"
	"github.com/dmitryhil/vineweb/internal/infrastructure/storage"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		MaxPageLimit: 100,
		UploadConfig: config.UploadConfig{
			URLPrefix:    "/uploads",
			MaxFileBytes: 1 << 20,
		},
	}
}

func newFileHeader(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File[field][0]
}

type fakeImageStore struct {
	mu      sync.Mutex
	images  map[string]storage.StoredImage
	deleted []string
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{images: map[string]storage.StoredImage{}}
}

func (f *fakeImageStore) put(img storage.StoredImage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[img.Path] = img
}

func (f *fakeImageStore) Save(ctx context.Context, field string, fh *multipart.FileHeader) (storage.StoredImage, error) {
	filename := storage.NewFilename(field, fh.Filename, time.Now())
	img := storage.StoredImage{Filename: filename, Path: "/uploads/" + filename, Size: fh.Size, ModTime: time.Now()}
	f.put(img)
	return img, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.images, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeImageStore) List(ctx context.Context) ([]storage.StoredImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	images := make([]storage.StoredImage, 0, len(f.images))
	for _, img := range f.images {
		images = append(images, img)
	}
	return images, nil
}

func (f *fakeImageStore) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.images[path]
	return ok
}

func (f *fakeImageStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.images)
}

type publishedEvent struct {
	eventType string
	key       string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{eventType: eventType, key: key})
	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) hasEvent(eventType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.ContainsFunc(p.events, func(e publishedEvent) bool { return e.eventType == eventType })
}

// countingCache never hits and counts invalidations.
type countingCache struct {
	cache.NoopProductCache
	mu            sync.Mutex
	invalidations int
}

func (c *countingCache) Invalidate(ctx context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	return nil
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations
}

// detailCache serves product details it has seen until they are invalidated.
type detailCache struct {
	cache.NoopProductCache
	mu       sync.Mutex
	products map[string]domain.Product
}

func newDetailCache() *detailCache {
	return &detailCache{products: map[string]domain.Product{}}
}

func (c *detailCache) GetProduct(ctx context.Context, id string) (domain.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	return p, ok
}

func (c *detailCache) SetProduct(ctx context.Context, product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID.Hex()] = product
}

func (c *detailCache) Invalidate(ctx context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.products, id)
	}
	return nil
}

// listCache serves a fixed list response for every query.
type listCache struct {
	cache.NoopProductCache
	res dto.ProductListResponse
}

func (c listCache) GetProductList(ctx context.Context, query catalog.Query) (dto.ProductListResponse, bool) {
	return c.res, true
}

func sampleRequest() dto.ProductRequest {
	return dto.ProductRequest{
		Name:        ptr("Linen shirt"),
		Description: ptr("Light summer shirt"),
		Price:       ptr(int64(1200)),
		Category:    ptr("men"),
		Subcategory: ptr("shirts"),
		Sizes:       ptr([]string{"M", "L"}),
		Tags:        ptr([]string{"summer"}),
	}
}
