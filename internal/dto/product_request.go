package dto

import "mime/multipart"

// ProductRequest carries the multipart form of product create/update. Nil
// pointers are fields absent from the form.
type ProductRequest struct {
	ID            string
	Name          *string `validate:"omitempty,min=1"`
	Description   *string `validate:"omitempty,min=1"`
	Price         *int64  `validate:"omitempty,gte=0"`
	OriginalPrice *int64  `validate:"omitempty,gte=0"`
	Category      *string `validate:"omitempty,oneof=men women children accessories"`
	Subcategory   *string `validate:"omitempty,oneof=jeans sweatpants sweatshirts hoodies shirts t-shirts swimsuits shorts tank-tops skirts business-suits dresses jackets windbreakers bags belts accessories-other"`
	Gender        *string `validate:"omitempty,oneof=boys girls"`
	Sizes         *[]string
	IsNew         *bool
	Discount      *int64 `validate:"omitempty,gte=0,lte=100"`
	InStock       *bool
	StockQuantity *int64 `validate:"omitempty,gte=0"`
	Tags          *[]string
	Images        []*multipart.FileHeader `validate:"max=5"`
}

// MissingRequired lists the create-time required fields that are absent.
func (r ProductRequest) MissingRequired() []string {
	var missing []string
	if r.Name == nil || *r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Description == nil || *r.Description == "" {
		missing = append(missing, "description")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if r.Category == nil || *r.Category == "" {
		missing = append(missing, "category")
	}
	if r.Subcategory == nil || *r.Subcategory == "" {
		missing = append(missing, "subcategory")
	}
	if r.Sizes == nil {
		missing = append(missing, "sizes")
	}
	return missing
}
