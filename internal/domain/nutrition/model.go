package nutrition

import (
	"fmt"
	"math"
	"strings"

	"github.com/yanqian/desi-diet/internal/domain/catalog"
)

// MealSlot is one of the four daily meals.
type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
	Snacks    MealSlot = "snacks"
)

// Slots lists the meal slots in display order.
var Slots = []MealSlot{Breakfast, Lunch, Dinner, Snacks}

// ParseSlot normalizes raw input into a MealSlot.
func ParseSlot(raw string) (MealSlot, error) {
	slot := MealSlot(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Slots {
		if slot == known {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown meal slot %q", raw)
}

// MealEntry is a food snapshot and how many servings of it were eaten.
type MealEntry struct {
	Food     catalog.FoodItem `json:"food"`
	Quantity int              `json:"quantity"`
}

// MealPlan holds one day's entries. A food id appears at most once per slot.
type MealPlan struct {
	Breakfast []MealEntry `json:"breakfast"`
	Lunch     []MealEntry `json:"lunch"`
	Dinner    []MealEntry `json:"dinner"`
	Snacks    []MealEntry `json:"snacks"`
}

// NewMealPlan returns a plan with four empty slots.
func NewMealPlan() MealPlan {
	return MealPlan{
		Breakfast: []MealEntry{},
		Lunch:     []MealEntry{},
		Dinner:    []MealEntry{},
		Snacks:    []MealEntry{},
	}
}

func (p *MealPlan) entries(slot MealSlot) *[]MealEntry {
	switch slot {
	case Breakfast:
		return &p.Breakfast
	case Lunch:
		return &p.Lunch
	case Dinner:
		return &p.Dinner
	case Snacks:
		return &p.Snacks
	default:
		return nil
	}
}

// Entries returns the entries of one slot.
func (p MealPlan) Entries(slot MealSlot) []MealEntry {
	if e := p.entries(slot); e != nil {
		return *e
	}
	return nil
}

// normalize replaces missing slots with empty ones and drops entries a
// hand-edited or truncated document may carry with a non-positive quantity.
func (p *MealPlan) normalize() {
	for _, slot := range Slots {
		e := p.entries(slot)
		kept := make([]MealEntry, 0, len(*e))
		for _, entry := range *e {
			if entry.Quantity > 0 && entry.Food.ID != "" {
				kept = append(kept, entry)
			}
		}
		*e = kept
	}
}

// Add puts quantity servings of food into slot, summing with an existing
// entry for the same food. Quantities below 1 are ignored.
func (p *MealPlan) Add(slot MealSlot, food catalog.FoodItem, quantity int) {
	e := p.entries(slot)
	if e == nil || quantity < 1 {
		return
	}
	for i := range *e {
		if (*e)[i].Food.ID == food.ID {
			(*e)[i].Quantity += quantity
			return
		}
	}
	*e = append(*e, MealEntry{Food: food, Quantity: quantity})
}

// Remove drops the entry for foodID from slot if present.
func (p *MealPlan) Remove(slot MealSlot, foodID string) {
	e := p.entries(slot)
	if e == nil {
		return
	}
	for i := range *e {
		if (*e)[i].Food.ID == foodID {
			*e = append((*e)[:i], (*e)[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the entry's quantity exactly; quantity <= 0 removes it.
func (p *MealPlan) UpdateQuantity(slot MealSlot, foodID string, quantity int) {
	if quantity <= 0 {
		p.Remove(slot, foodID)
		return
	}
	e := p.entries(slot)
	if e == nil {
		return
	}
	for i := range *e {
		if (*e)[i].Food.ID == foodID {
			(*e)[i].Quantity = quantity
			return
		}
	}
}

// Clear empties one slot.
func (p *MealPlan) Clear(slot MealSlot) {
	if e := p.entries(slot); e != nil {
		*e = []MealEntry{}
	}
}

// ClearAll empties every slot.
func (p *MealPlan) ClearAll() {
	*p = NewMealPlan()
}

// SlotCalories sums calories*quantity over one slot.
func (p MealPlan) SlotCalories(slot MealSlot) int {
	total := 0
	for _, entry := range p.Entries(slot) {
		total += entry.Food.Calories * entry.Quantity
	}
	return total
}

// TotalCalories sums calories*quantity over every slot.
func (p MealPlan) TotalCalories() int {
	total := 0
	for _, slot := range Slots {
		total += p.SlotCalories(slot)
	}
	return total
}

// Progress messages keyed by how much of the target has been eaten.
const (
	StatusEatMore = "You can eat more today"
	StatusOnTrack = "You're on track!"
	StatusAlmost  = "Almost at your daily goal"
	StatusReached = "You've reached your daily goal"
)

// DefaultTarget applies when the user has no saved profile.
const DefaultTarget = 2000

// Totals is derived from a plan and a daily target; never stored.
type Totals struct {
	TotalCalories int              `json:"totalCalories"`
	Target        int              `json:"target"`
	Remaining     int              `json:"remaining"`
	Percentage    int              `json:"percentage"`
	Protein       float64          `json:"protein"`
	Carbs         float64          `json:"carbs"`
	Fat           float64          `json:"fat"`
	Meals         map[MealSlot]int `json:"meals"`
	Status        string           `json:"status"`
}

// Totals derives calorie progress against target.
func (p MealPlan) Totals(target int) Totals {
	t := Totals{
		TotalCalories: p.TotalCalories(),
		Target:        target,
		Meals:         make(map[MealSlot]int, len(Slots)),
	}
	for _, slot := range Slots {
		t.Meals[slot] = p.SlotCalories(slot)
		for _, entry := range p.Entries(slot) {
			q := float64(entry.Quantity)
			t.Protein += macro(entry.Food.Protein) * q
			t.Carbs += macro(entry.Food.Carbs) * q
			t.Fat += macro(entry.Food.Fat) * q
		}
	}
	if target > t.TotalCalories {
		t.Remaining = target - t.TotalCalories
	}
	if target > 0 {
		t.Percentage = int(math.Round(100 * float64(t.TotalCalories) / float64(target)))
		if t.Percentage > 100 {
			t.Percentage = 100
		}
	}
	t.Status = progressStatus(t.Percentage)
	return t
}

func macro(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func progressStatus(percentage int) string {
	switch {
	case percentage < 70:
		return StatusEatMore
	case percentage < 90:
		return StatusOnTrack
	case percentage < 100:
		return StatusAlmost
	default:
		return StatusReached
	}
}
