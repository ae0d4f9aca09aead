package domain

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ProductCategories = []string{"men", "women", "children", "accessories"}

var ProductSubcategories = []string{
	"jeans", "sweatpants", "sweatshirts", "hoodies", "shirts", "t-shirts",
	"swimsuits", "shorts", "tank-tops", "skirts", "business-suits", "dresses",
	"jackets", "windbreakers", "bags", "belts", "accessories-other",
}

var ProductGenders = []string{"boys", "girls"}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         int64              `bson:"price" json:"price"`
	OriginalPrice *int64             `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Category      string             `bson:"category" json:"category"`
	Subcategory   string             `bson:"subcategory" json:"subcategory"`
	Gender        *string            `bson:"gender" json:"gender"`
	Sizes         []string           `bson:"sizes" json:"sizes"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Images        []string           `bson:"images" json:"images"`
	IsNew         bool               `bson:"isNew" json:"isNew"`
	Discount      int64              `bson:"discount" json:"discount"`
	InStock       bool               `bson:"inStock" json:"inStock"`
	StockQuantity int64              `bson:"stockQuantity" json:"stockQuantity"`
	Tags          []string           `bson:"tags" json:"tags"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductChanges is a partial update: nil fields are left untouched. A Gender
// pointing at "" clears the gender.
type ProductChanges struct {
	Name          *string
	Description   *string
	Price         *int64
	OriginalPrice *int64
	Category      *string
	Subcategory   *string
	Gender        *string
	Sizes         *[]string
	Image         *string
	Images        *[]string
	IsNew         *bool
	Discount      *int64
	InStock       *bool
	StockQuantity *int64
	Tags          *[]string
	UpdatedAt     time.Time
}

// Apply is the in-memory form of the update the store performs.
func (c ProductChanges) Apply(p *Product) {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.OriginalPrice != nil {
		v := *c.OriginalPrice
		p.OriginalPrice = &v
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Subcategory != nil {
		p.Subcategory = *c.Subcategory
	}
	if c.Gender != nil {
		if *c.Gender == "" {
			p.Gender = nil
		} else {
			v := *c.Gender
			p.Gender = &v
		}
	}
	if c.Sizes != nil {
		p.Sizes = slices.Clone(*c.Sizes)
	}
	if c.Image != nil {
		p.Image = *c.Image
	}
	if c.Images != nil {
		p.Images = slices.Clone(*c.Images)
	}
	if c.IsNew != nil {
		p.IsNew = *c.IsNew
	}
	if c.Discount != nil {
		p.Discount = *c.Discount
	}
	if c.InStock != nil {
		p.InStock = *c.InStock
	}
	if c.StockQuantity != nil {
		p.StockQuantity = *c.StockQuantity
	}
	if c.Tags != nil {
		p.Tags = slices.Clone(*c.Tags)
	}
	p.UpdatedAt = c.UpdatedAt
}

// StoredImages lists every stored image path of the product, the legacy
// primary image included when it is not already part of Images.
func (p Product) StoredImages() []string {
	paths := slices.Clone(p.Images)
	if p.Image != "" && !slices.Contains(paths, p.Image) {
		paths = append(paths, p.Image)
	}
	return paths
}
