package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dmitryhil/vineweb/internal/catalog/mirror"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	pkgdto "github.com/dmitryhil/vineweb/pkg/dto"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: primitive.NewObjectID(), Name: "Slim Jeans", Category: "men", Subcategory: "jeans", Price: 4999, Sizes: []string{"M"}, InStock: true, StockQuantity: 3},
		{ID: primitive.NewObjectID(), Name: "Summer Dress", Category: "women", Subcategory: "dresses", Price: 2999, Sizes: []string{"S"}, InStock: false},
	}
}

func TestServerQuery(t *testing.T) {
	cmd := &cobra.Command{}
	for _, name := range serverFilterFlags {
		cmd.Flags().String(name, "", "")
	}

	require.NoError(t, cmd.Flags().Set("category", "men"))
	require.NoError(t, cmd.Flags().Set("sizes", "M,L"))

	query := serverQuery(cmd)
	assert.Equal(t, url.Values{"category": {"men"}, "sizes": {"M,L"}}, query)
}

func TestAPIURL(t *testing.T) {
	assert.Equal(t, "http://shop/api/products", apiURL("http://shop/", "/products", nil))
	assert.Equal(t, "http://shop/api/products?page=2", apiURL("http://shop", "/products", url.Values{"page": {"2"}}))
}

func TestFetchProducts(t *testing.T) {
	products := sampleProducts()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/products":
			assert.Equal(t, "men", r.URL.Query().Get("category"))
			json.NewEncoder(w).Encode(dto.ProductListResponse{
				Products:   products,
				Pagination: pkgdto.NewPagination(1, 20, 2),
			})
		case strings.HasPrefix(r.URL.Path, "/api/products/"):
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Product not found"}`))
		}
	}))
	defer server.Close()

	res, err := fetchProducts(context.Background(), server.URL, url.Values{"category": {"men"}})
	require.NoError(t, err)
	assert.Len(t, res.Products, 2)
	assert.Equal(t, int64(2), res.Pagination.Total)

	_, err = fetchProduct(context.Background(), server.URL, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Product not found")

	_, err = fetchProduct(context.Background(), server.URL, " ")
	assert.ErrorIs(t, err, ErrEmptyProductID)
}

func TestRenderProducts(t *testing.T) {
	opts := mirror.DefaultOptions()
	opts.Category = "women"

	out := renderProducts(mirror.Apply(sampleProducts(), opts), 2)

	assert.Contains(t, out, "Summer Dress")
	assert.NotContains(t, out, "Slim Jeans")
	assert.Contains(t, out, "1 matched locally, 2 on server")
}

func TestRenderProduct(t *testing.T) {
	p := sampleProducts()[0]
	original := int64(5999)
	p.OriginalPrice = &original
	p.Discount = 15

	out := renderProduct(p)

	assert.Contains(t, out, "4999 (was 5999) -15%")
	assert.Contains(t, out, "Stock:     3")
}
