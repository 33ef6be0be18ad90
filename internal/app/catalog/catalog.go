// Package catalog serves the static menu. Order items are priced from
// it at cart-build time; the engine never consults it afterwards.
package catalog

import (
	"fmt"

	"leaf-and-fork/internal/domain"
)

type Catalog struct {
	items []domain.MenuItem
	byID  map[int]domain.MenuItem
}

func New(items []domain.MenuItem) *Catalog {
	byID := make(map[int]domain.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &Catalog{items: items, byID: byID}
}

// Default returns the seed menu.
func Default() *Catalog {
	return New(defaultMenu)
}

// Items returns the active menu entries.
func (c *Catalog) Items() []domain.MenuItem {
	out := make([]domain.MenuItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Active {
			out = append(out, item)
		}
	}
	return out
}

func (c *Catalog) Get(id int) (domain.MenuItem, error) {
	item, ok := c.byID[id]
	if !ok {
		return domain.MenuItem{}, fmt.Errorf("%w: id %d", domain.ErrMenuItemNotFound, id)
	}
	return item, nil
}

var defaultMenu = []domain.MenuItem{
	{
		ID:              1,
		Name:            "Quinoa Power Bowl",
		Description:     "Quinoa, grilled chicken, avocado, cherry tomatoes, and tahini dressing",
		Calories:        420,
		Protein:         35,
		Carbs:           45,
		Fat:             18,
		PrepTimeMinutes: 15,
		Price:           12.99,
		Category:        "protein-bowls",
		Kitchen:         "Green Bowl Kitchen",
		Active:          true,
	},
	{
		ID:              2,
		Name:            "Keto Salmon Salad",
		Description:     "Grilled salmon, mixed greens, cucumber, feta cheese, olive oil dressing",
		Calories:        380,
		Protein:         32,
		Carbs:           8,
		Fat:             26,
		PrepTimeMinutes: 12,
		Price:           15.99,
		Category:        "keto",
		Kitchen:         "Keto Corner",
		Active:          true,
	},
	{
		ID:              3,
		Name:            "Green Goddess Smoothie",
		Description:     "Spinach, banana, mango, coconut milk, chia seeds, protein powder",
		Calories:        280,
		Protein:         20,
		Carbs:           35,
		Fat:             8,
		PrepTimeMinutes: 5,
		Price:           8.99,
		Category:        "smoothies",
		Kitchen:         "Smoothie Station",
		Active:          true,
	},
	{
		ID:              4,
		Name:            "Mediterranean Chickpea Salad",
		Description:     "Chickpeas, cucumber, tomatoes, red onion, olives, lemon herb dressing",
		Calories:        320,
		Protein:         15,
		Carbs:           42,
		Fat:             12,
		PrepTimeMinutes: 10,
		Price:           10.99,
		Category:        "salads",
		Kitchen:         "Green Bowl Kitchen",
		Active:          true,
	},
	{
		ID:              5,
		Name:            "Protein Pancakes",
		Description:     "Oat flour pancakes with protein powder, topped with berries and almond butter",
		Calories:        350,
		Protein:         25,
		Carbs:           38,
		Fat:             12,
		PrepTimeMinutes: 18,
		Price:           9.99,
		Category:        "protein-bowls",
		Kitchen:         "Protein Paradise",
		Active:          true,
	},
	{
		ID:              6,
		Name:            "Acai Energy Bowl",
		Description:     "Acai puree, granola, fresh berries, coconut flakes, honey drizzle",
		Calories:        290,
		Protein:         8,
		Carbs:           52,
		Fat:             9,
		PrepTimeMinutes: 8,
		Price:           11.99,
		Category:        "smoothies",
		Kitchen:         "Smoothie Station",
		Active:          true,
	},
}
