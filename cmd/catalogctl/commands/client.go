package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/pkg/httpclient"
)

var ErrEmptyProductID = errors.New("product id is required")

type apiError struct {
	Error string `json:"error"`
}

func apiURL(base string, path string, query url.Values) string {
	u := strings.TrimRight(base, "/") + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func get(ctx context.Context, target string, v interface{}) error {
	status, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:     target,
		Method:  http.MethodGet,
		Headers: map[string]string{"Accept": "application/json", "User-Agent": "catalogctl"},
	})
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", status, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", status)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func fetchProducts(ctx context.Context, base string, query url.Values) (dto.ProductListResponse, error) {
	var res dto.ProductListResponse
	err := get(ctx, apiURL(base, "/products", query), &res)
	return res, err
}

func fetchProduct(ctx context.Context, base string, id string) (domain.Product, error) {
	var product domain.Product
	if strings.TrimSpace(id) == "" {
		return product, ErrEmptyProductID
	}

	err := get(ctx, apiURL(base, "/products/"+url.PathEscape(id), nil), &product)
	return product, err
}
