package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 20, Total: 0, Pages: 0}, NewPagination(1, 20, 0))
	assert.Equal(t, 3, NewPagination(1, 20, 41).Pages)
	assert.Equal(t, 2, NewPagination(2, 20, 40).Pages)
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{Page: 0, Limit: 500}
	f.Normalize(20, 100)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, int64(0), f.Offset())

	f = Filter{Page: 3, Limit: 0}
	f.Normalize(20, 100)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, int64(40), f.Offset())
}
