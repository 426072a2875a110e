package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/desi-diet/pkg/errors"
)

// Catalog is the read-only food list, indexed by id. Safe for concurrent use.
type Catalog struct {
	foods []FoodItem
	byID  map[string]FoodItem
}

// New validates items and builds a Catalog. Ids must be unique, calories
// positive, macros non-negative and categories known.
func New(items []FoodItem) (*Catalog, error) {
	c := &Catalog{
		foods: make([]FoodItem, 0, len(items)),
		byID:  make(map[string]FoodItem, len(items)),
	}
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return nil, fmt.Errorf("food %d: %w", i, err)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("food %d: duplicate id %q", i, item.ID)
		}
		c.byID[item.ID] = item
		c.foods = append(c.foods, item)
	}
	return c, nil
}

// Load reads the food list from src and builds a Catalog.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Catalog, error) {
	items, err := src.Foods(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	c, err := New(items)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.With("component", "catalog").Info("food catalog loaded", "foods", len(c.foods))
	return c, nil
}

func validateItem(item FoodItem) error {
	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%s: name cannot be empty", item.ID)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%s: unknown category %q", item.ID, item.Category)
	}
	if item.Calories <= 0 {
		return fmt.Errorf("%s: calories must be positive", item.ID)
	}
	for _, macro := range []*float64{item.Protein, item.Carbs, item.Fat} {
		if macro != nil && *macro < 0 {
			return fmt.Errorf("%s: macros cannot be negative", item.ID)
		}
	}
	return nil
}

// All returns every food in catalog order.
func (c *Catalog) All() []FoodItem {
	out := make([]FoodItem, len(c.foods))
	copy(out, c.foods)
	return out
}

// ByCategory returns the foods of one category in catalog order.
func (c *Catalog) ByCategory(category Category) []FoodItem {
	out := make([]FoodItem, 0)
	for _, item := range c.foods {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Search matches query case-insensitively against food names. An empty query
// matches everything.
func (c *Catalog) Search(query string) []FoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	out := make([]FoodItem, 0)
	for _, item := range c.foods {
		if strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out
}

// Filter applies an optional category and an optional name query.
func (c *Catalog) Filter(category, query string) ([]FoodItem, error) {
	if category == "" {
		return c.Search(query), nil
	}
	cat := Category(strings.ToLower(category))
	if !cat.Valid() {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unknown category %q", category), nil)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]FoodItem, 0)
	for _, item := range c.ByCategory(cat) {
		if q == "" || strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Get looks up a food by id.
func (c *Catalog) Get(id string) (FoodItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// CategoryInfos describes every category in display order.
func (c *Catalog) CategoryInfos() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(Categories))
	for _, cat := range Categories {
		out = append(out, categoryInfo[cat])
	}
	return out
}
