package catalog

import "context"

// Category groups foods on the catalog pages.
type Category string

// Known categories, in display order.
const (
	CategoryVegetables Category = "vegetables"
	CategoryLentils    Category = "lentils"
	CategoryMeat       Category = "meat"
	CategoryCarbs      Category = "carbs"
	CategoryProtein    Category = "protein"
	CategoryBeverages  Category = "beverages"
	CategorySweets     Category = "sweets"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryVegetables,
	CategoryLentils,
	CategoryMeat,
	CategoryCarbs,
	CategoryProtein,
	CategoryBeverages,
	CategorySweets,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FoodItem is an immutable catalog entry. Macros are grams per serving.
type FoodItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Calories    int      `json:"calories"`
	ServingSize string   `json:"servingSize"`
	Protein     *float64 `json:"protein,omitempty"`
	Carbs       *float64 `json:"carbs,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// CategoryInfo describes a category for display.
type CategoryInfo struct {
	ID          Category `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
}

// Source yields the raw food list the catalog is built from.
type Source interface {
	Foods(ctx context.Context) ([]FoodItem, error)
}
