package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 20
	DefaultSortField = "createdAt"
)

var sortableFields = map[string]bool{
	"createdAt":     true,
	"updatedAt":     true,
	"name":          true,
	"price":         true,
	"originalPrice": true,
	"discount":      true,
	"stockQuantity": true,
}

type Sort struct {
	Field string
	Desc  bool
}

type Query struct {
	Criteria Criteria
	Sort     Sort
	Page     int
	Limit    int
}

func (q Query) Offset() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// ParseQuery reads the list parameters leniently: unparsable numbers drop the
// price filter or fall back to the page defaults. maxLimit <= 0 disables the
// cap on limit.
func ParseQuery(values url.Values, maxLimit int) Query {
	q := Query{
		Page:  DefaultPage,
		Limit: DefaultLimit,
		Sort:  Sort{Field: DefaultSortField, Desc: true},
	}

	if category := values.Get("category"); category != "" && category != CategoryAll {
		q.Criteria.Category = category
	}

	q.Criteria.Subcategory = values.Get("subcategory")
	q.Criteria.Gender = values.Get("gender")
	q.Criteria.Search = strings.TrimSpace(values.Get("search"))
	q.Criteria.MinPrice = parseOptionalInt(values.Get("minPrice"))
	q.Criteria.MaxPrice = parseOptionalInt(values.Get("maxPrice"))
	q.Criteria.Sizes = SplitList(values.Get("sizes"))
	q.Criteria.IsNew = parseOptionalBool(values, "isNew")
	q.Criteria.InStock = parseOptionalBool(values, "inStock")

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}

	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit >= 1 {
		q.Limit = limit
	}

	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	if field := values.Get("sortBy"); sortableFields[field] {
		q.Sort.Field = field
	}

	if values.Has("sortOrder") {
		q.Sort.Desc = values.Get("sortOrder") == "desc"
	}

	return q
}

// CacheKey is a canonical encoding of q, equal for equal queries.
func (q Query) CacheKey() string {
	v := url.Values{}
	c := q.Criteria

	setIfNotEmpty(v, "category", c.Category)
	setIfNotEmpty(v, "subcategory", c.Subcategory)
	setIfNotEmpty(v, "gender", c.Gender)
	setIfNotEmpty(v, "search", strings.ToLower(c.Search))
	if c.MinPrice != nil {
		v.Set("minPrice", strconv.FormatInt(*c.MinPrice, 10))
	}
	if c.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatInt(*c.MaxPrice, 10))
	}
	setIfNotEmpty(v, "sizes", strings.Join(c.Sizes, ","))
	if c.IsNew != nil {
		v.Set("isNew", strconv.FormatBool(*c.IsNew))
	}
	if c.InStock != nil {
		v.Set("inStock", strconv.FormatBool(*c.InStock))
	}
	v.Set("sortBy", q.Sort.Field)
	v.Set("desc", strconv.FormatBool(q.Sort.Desc))
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))

	return v.Encode()
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseOptionalInt(s string) *int64 {
	if s == "" {
		return nil
	}

	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}

	return &v
}

func parseOptionalBool(values url.Values, key string) *bool {
	if !values.Has(key) {
		return nil
	}

	v := values.Get(key) == "true"
	return &v
}

func setIfNotEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
