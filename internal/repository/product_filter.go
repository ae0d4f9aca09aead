package repository

import (
	"regexp"

	"github.com/dmitryhil/vineweb/internal/catalog"
	"github.com/dmitryhil/vineweb/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildProductFilter is the store-side adapter of catalog.Criteria.Match.
func buildProductFilter(c catalog.Criteria) bson.M {
	filter := bson.M{}

	if c.Category != "" {
		filter["category"] = c.Category
	}

	if c.Subcategory != "" {
		filter["subcategory"] = c.Subcategory
	}

	if c.Gender != "" {
		filter["gender"] = c.Gender
	}

	if c.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(c.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"tags": pattern},
		}
	}

	if c.MinPrice != nil || c.MaxPrice != nil {
		price := bson.M{}
		if c.MinPrice != nil {
			price["$gte"] = *c.MinPrice
		}
		if c.MaxPrice != nil {
			price["$lte"] = *c.MaxPrice
		}
		filter["price"] = price
	}

	if len(c.Sizes) > 0 {
		filter["sizes"] = bson.M{"$in": c.Sizes}
	}

	if c.IsNew != nil {
		filter["isNew"] = *c.IsNew
	}

	if c.InStock != nil {
		filter["inStock"] = *c.InStock
	}

	return filter
}

func buildProductSort(s catalog.Sort) bson.D {
	direction := 1
	if s.Desc {
		direction = -1
	}

	return bson.D{{Key: s.Field, Value: direction}, {Key: "_id", Value: 1}}
}

func buildProductUpdate(changes domain.ProductChanges) bson.D {
	set := bson.D{}

	appendIf := func(key string, ok bool, value interface{}) {
		if ok {
			set = append(set, bson.E{Key: key, Value: value})
		}
	}

	appendIf("name", changes.Name != nil, deref(changes.Name))
	appendIf("description", changes.Description != nil, deref(changes.Description))
	appendIf("price", changes.Price != nil, deref(changes.Price))
	appendIf("originalPrice", changes.OriginalPrice != nil, deref(changes.OriginalPrice))
	appendIf("category", changes.Category != nil, deref(changes.Category))
	appendIf("subcategory", changes.Subcategory != nil, deref(changes.Subcategory))
	if changes.Gender != nil {
		var gender interface{}
		if *changes.Gender != "" {
			gender = *changes.Gender
		}
		set = append(set, bson.E{Key: "gender", Value: gender})
	}
	appendIf("sizes", changes.Sizes != nil, derefSlice(changes.Sizes))
	appendIf("image", changes.Image != nil, deref(changes.Image))
	appendIf("images", changes.Images != nil, derefSlice(changes.Images))
	appendIf("isNew", changes.IsNew != nil, deref(changes.IsNew))
	appendIf("discount", changes.Discount != nil, deref(changes.Discount))
	appendIf("inStock", changes.InStock != nil, deref(changes.InStock))
	appendIf("stockQuantity", changes.StockQuantity != nil, deref(changes.StockQuantity))
	appendIf("tags", changes.Tags != nil, derefSlice(changes.Tags))
	set = append(set, bson.E{Key: "updatedAt", Value: changes.UpdatedAt})

	return bson.D{{Key: "$set", Value: set}}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// derefSlice keeps an explicitly empty list as [] rather than null.
func derefSlice(v *[]string) []string {
	if v == nil || *v == nil {
		return []string{}
	}
	return *v
}
