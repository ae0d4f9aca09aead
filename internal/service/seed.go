package service

import "github.com/dmitryhil/vineweb/internal/domain"

func sampleProducts() []domain.Product {
	originalPrice := int64(1599)
	boys, girls := "boys", "girls"
	childSizes := []string{"98", "104", "110", "116", "122", "128", "134", "140"}

	return []domain.Product{
		{
			Name:          "Classic men's jeans",
			Description:   "Everyday jeans cut from heavy denim.",
			Price:         1299,
			OriginalPrice: &originalPrice,
			Category:      "men",
			Subcategory:   "jeans",
			Sizes:         []string{"S", "M", "L", "XL", "XXL"},
			Images:        []string{},
			Discount:      19,
			InStock:       true,
			StockQuantity: 25,
			Tags:          []string{"jeans", "men", "denim"},
		},
		{
			Name:          "Evening dress",
			Description:   "A dress for special occasions made from quality fabric.",
			Price:         2199,
			Category:      "women",
			Subcategory:   "dresses",
			Sizes:         []string{"XS", "S", "M", "L", "XL"},
			Images:        []string{},
			IsNew:         true,
			InStock:       true,
			StockQuantity: 15,
			Tags:          []string{"dress", "women", "evening"},
		},
		{
			Name:          "Boys cotton t-shirt",
			Description:   "Soft cotton t-shirt for boys.",
			Price:         399,
			Category:      "children",
			Subcategory:   "t-shirts",
			Gender:        &boys,
			Sizes:         childSizes,
			Images:        []string{},
			InStock:       true,
			StockQuantity: 30,
			Tags:          []string{"t-shirt", "children", "boys"},
		},
		{
			Name:          "Girls pleated skirt",
			Description:   "A skirt for school and walks.",
			Price:         599,
			Category:      "children",
			Subcategory:   "skirts",
			Gender:        &girls,
			Sizes:         childSizes,
			Images:        []string{},
			IsNew:         true,
			InStock:       true,
			StockQuantity: 20,
			Tags:          []string{"skirt", "children", "girls"},
		},
		{
			Name:          "Leather bag",
			Description:   "Leather bag for everyday use.",
			Price:         1899,
			Category:      "accessories",
			Subcategory:   "bags",
			Sizes:         []string{"One Size"},
			Images:        []string{},
			InStock:       true,
			StockQuantity: 10,
			Tags:          []string{"bag", "accessories", "leather"},
		},
	}
}
