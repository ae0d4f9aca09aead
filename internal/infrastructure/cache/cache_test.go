package cache

import (
	"context"
	"net/url"
	"testing"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestListKey(t *testing.T) {
	q1 := catalog.ParseQuery(url.Values{"category": {"men"}, "page": {"2"}}, 100)
	q2 := catalog.ParseQuery(url.Values{"page": {"2"}, "category": {"men"}}, 100)

	assert.Equal(t, listKey(3, q1), listKey(3, q2))
	assert.NotEqual(t, listKey(3, q1), listKey(4, q1))
	assert.Contains(t, listKey(7, q1), "products:v:7:")
}

func TestNoopProductCache(t *testing.T) {
	var c ProductCache = NoopProductCache{}
	ctx := context.Background()

	_, ok := c.GetProductList(ctx, catalog.Query{})
	assert.False(t, ok)

	_, ok = c.GetProduct(ctx, "abc")
	assert.False(t, ok)

	assert.NoError(t, c.Invalidate(ctx, "abc"))
	assert.NoError(t, c.Invalidate(ctx))
}

func TestDetailKeys(t *testing.T) {
	assert.Equal(t, []string{ProductKeyPrefix + "a", ProductKeyPrefix + "b"}, detailKeys([]string{"a", "", "b"}))
	assert.Empty(t, detailKeys(nil))
}
