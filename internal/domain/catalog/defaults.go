package catalog

func grams(v float64) *float64 { return &v }

func food(id, name string, category Category, calories int, serving string, protein, carbs, fat float64) FoodItem {
	return FoodItem{
		ID:          id,
		Name:        name,
		Category:    category,
		Calories:    calories,
		ServingSize: serving,
		Protein:     grams(protein),
		Carbs:       grams(carbs),
		Fat:         grams(fat),
	}
}

// DefaultFoods returns a fresh copy of the built-in food list.
func DefaultFoods() []FoodItem {
	return []FoodItem{
		food("veg-1", "Aloo Gobi", CategoryVegetables, 150, "1 cup", 4, 25, 5),
		food("veg-2", "Palak Paneer", CategoryVegetables, 220, "1 cup", 12, 10, 15),
		food("veg-3", "Bhindi Masala", CategoryVegetables, 120, "1 cup", 4, 15, 6),

		food("lentil-1", "Yellow Daal", CategoryLentils, 150, "1 cup", 9, 20, 2),
		food("lentil-2", "Chana Daal", CategoryLentils, 180, "1 cup", 10, 25, 3),
		food("lentil-3", "Rajma", CategoryLentils, 210, "1 cup", 15, 35, 1),

		food("meat-1", "Chicken Curry", CategoryMeat, 280, "1 cup", 26, 8, 16),
		food("meat-2", "Beef Nihari", CategoryMeat, 320, "1 cup", 28, 7, 22),
		food("meat-3", "Chicken Tikka", CategoryMeat, 200, "4 pieces", 30, 2, 8),

		food("carb-1", "Roti", CategoryCarbs, 120, "1 piece", 4, 20, 2),
		food("carb-2", "Naan", CategoryCarbs, 260, "1 piece", 9, 50, 4),
		food("carb-3", "Basmati Rice", CategoryCarbs, 200, "1 cup cooked", 5, 45, 0),
		food("carb-4", "Paratha", CategoryCarbs, 330, "1 piece", 6, 30, 18),

		food("protein-1", "Paneer", CategoryProtein, 340, "100g", 18, 3, 28),
		food("protein-2", "Boiled Egg", CategoryProtein, 78, "1 egg", 6, 1, 5),
		food("protein-3", "Tandoori Chicken", CategoryProtein, 165, "100g", 25, 2, 7),

		food("bev-1", "Chai with Milk", CategoryBeverages, 120, "1 cup", 3, 10, 7),
		food("bev-2", "Lassi", CategoryBeverages, 150, "1 glass", 5, 15, 8),
		food("bev-3", "Mango Shake", CategoryBeverages, 230, "1 glass", 4, 40, 5),

		food("sweet-1", "Gulab Jamun", CategorySweets, 150, "1 piece", 2, 20, 7),
		food("sweet-2", "Jalebi", CategorySweets, 120, "1 piece", 1, 22, 5),
		food("sweet-3", "Kheer", CategorySweets, 200, "1/2 cup", 4, 28, 10),
	}
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryVegetables: {ID: CategoryVegetables, Name: "Vegetables (Sabzi)", Icon: "🥗", Description: "Nutritious vegetable dishes and curries"},
	CategoryLentils:    {ID: CategoryLentils, Name: "Lentils (Daal)", Icon: "🍛", Description: "Protein-rich lentil dishes"},
	CategoryMeat:       {ID: CategoryMeat, Name: "Meats", Icon: "🍗", Description: "Chicken, beef, and other meat dishes"},
	CategoryCarbs:      {ID: CategoryCarbs, Name: "Carbs", Icon: "🍞", Description: "Roti, naan, rice, and other staples"},
	CategoryProtein:    {ID: CategoryProtein, Name: "Protein", Icon: "🥚", Description: "Eggs, paneer, and other protein sources"},
	CategoryBeverages:  {ID: CategoryBeverages, Name: "Beverages", Icon: "🍵", Description: "Chai, lassi, and other drinks"},
	CategorySweets:     {ID: CategorySweets, Name: "Sweets", Icon: "🍬", Description: "Traditional desserts and sweet dishes"},
}
