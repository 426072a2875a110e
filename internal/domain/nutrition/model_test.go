package nutrition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/desi-diet/internal/domain/catalog"
)

func food(t *testing.T, id string) catalog.FoodItem {
	t.Helper()
	c, err := catalog.New(catalog.DefaultFoods())
	require.NoError(t, err)
	item, ok := c.Get(id)
	require.True(t, ok, id)
	return item
}

func TestMealPlan_AddCombinesQuantities(t *testing.T) {
	roti := food(t, "carb-1")
	plan := NewMealPlan()

	plan.Add(Lunch, roti, 2)
	plan.Add(Lunch, roti, 1)

	require.Len(t, plan.Lunch, 1)
	require.Equal(t, 3, plan.Lunch[0].Quantity)
	require.Empty(t, plan.Breakfast)
}

func TestMealPlan_AddIgnoresNonPositive(t *testing.T) {
	plan := NewMealPlan()
	plan.Add(Dinner, food(t, "carb-1"), 0)
	plan.Add(Dinner, food(t, "carb-1"), -2)
	require.Empty(t, plan.Dinner)
}

func TestMealPlan_LunchScenarioTotals(t *testing.T) {
	plan := NewMealPlan()
	plan.Add(Lunch, food(t, "carb-1"), 2)
	plan.Add(Lunch, food(t, "meat-1"), 1)

	require.Equal(t, 520, plan.SlotCalories(Lunch))
	require.Equal(t, 520, plan.TotalCalories())

	totals := plan.Totals(1180)
	require.Equal(t, 520, totals.TotalCalories)
	require.Equal(t, 660, totals.Remaining)
	require.Equal(t, 44, totals.Percentage)
	require.Equal(t, StatusEatMore, totals.Status)
	require.Equal(t, 520, totals.Meals[Lunch])
	require.Equal(t, 0, totals.Meals[Snacks])
	require.InDelta(t, 4*2+26, totals.Protein, 0.001)
	require.InDelta(t, 20*2+8, totals.Carbs, 0.001)
	require.InDelta(t, 2*2+16, totals.Fat, 0.001)
}

func TestMealPlan_TotalsBoundaries(t *testing.T) {
	plan := NewMealPlan()
	plan.Add(Dinner, food(t, "meat-2"), 10)

	over := plan.Totals(2000)
	require.Equal(t, 3200, over.TotalCalories)
	require.Equal(t, 0, over.Remaining)
	require.Equal(t, 100, over.Percentage)
	require.Equal(t, StatusReached, over.Status)

	zero := plan.Totals(0)
	require.Equal(t, 0, zero.Percentage)
	require.Equal(t, 0, zero.Remaining)

	cases := []struct {
		calories int
		status   string
	}{
		{1389, StatusEatMore},
		{1400, StatusOnTrack},
		{1789, StatusOnTrack},
		{1800, StatusAlmost},
		{1989, StatusAlmost},
		{2000, StatusReached},
	}
	for _, tc := range cases {
		p := NewMealPlan()
		p.Add(Snacks, catalog.FoodItem{ID: "x", Name: "X", Category: catalog.CategorySweets, Calories: tc.calories}, 1)
		require.Equal(t, tc.status, p.Totals(2000).Status, tc.calories)
	}
}

func TestMealPlan_MissingMacrosCountAsZero(t *testing.T) {
	plan := NewMealPlan()
	plan.Add(Snacks, catalog.FoodItem{ID: "x", Name: "X", Category: catalog.CategorySweets, Calories: 100}, 2)
	totals := plan.Totals(2000)
	require.Zero(t, totals.Protein)
	require.Equal(t, 200, totals.TotalCalories)
}

func TestMealPlan_UpdateQuantityIdempotent(t *testing.T) {
	plan := NewMealPlan()
	plan.Add(Breakfast, food(t, "bev-1"), 1)
	plan.Add(Breakfast, food(t, "protein-2"), 2)

	plan.UpdateQuantity(Breakfast, "protein-2", 4)
	once, err := json.Marshal(plan)
	require.NoError(t, err)
	plan.UpdateQuantity(Breakfast, "protein-2", 4)
	twice, err := json.Marshal(plan)
	require.NoError(t, err)
	require.JSONEq(t, string(once), string(twice))
	require.Equal(t, 4, plan.Breakfast[1].Quantity)

	plan.UpdateQuantity(Breakfast, "protein-2", 0)
	require.Len(t, plan.Breakfast, 1)
	require.Equal(t, "bev-1", plan.Breakfast[0].Food.ID)

	plan.UpdateQuantity(Breakfast, "missing", 3)
	require.Len(t, plan.Breakfast, 1)
}

func TestMealPlan_RemoveAndClear(t *testing.T) {
	plan := NewMealPlan()
	plan.Add(Dinner, food(t, "carb-3"), 1)
	plan.Add(Dinner, food(t, "lentil-1"), 1)
	plan.Add(Snacks, food(t, "sweet-2"), 1)

	plan.Remove(Dinner, "nope")
	require.Len(t, plan.Dinner, 2)
	plan.Remove(Dinner, "carb-3")
	require.Len(t, plan.Dinner, 1)

	plan.Clear(Dinner)
	require.Empty(t, plan.Dinner)
	require.Len(t, plan.Snacks, 1)

	plan.ClearAll()
	require.Equal(t, NewMealPlan(), plan)
}

func TestMealPlan_JSONRoundTrip(t *testing.T) {
	plan := NewMealPlan()
	plan.Add(Lunch, food(t, "carb-1"), 2)
	plan.Add(Snacks, food(t, "bev-2"), 1)

	data, err := json.Marshal(plan)
	require.NoError(t, err)
	require.Contains(t, string(data), `"breakfast":[]`)

	var decoded MealPlan
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, plan, decoded)
}

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot(" Lunch ")
	require.NoError(t, err)
	require.Equal(t, Lunch, slot)

	_, err = ParseSlot("brunch")
	require.Error(t, err)
}
