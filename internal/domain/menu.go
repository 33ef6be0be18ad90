package domain

// MenuItem is a catalog entry. It is owned by the catalog and only ever
// referenced by id from order items; the engine never mutates it.
type MenuItem struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Calories        int     `json:"calories"`
	Protein         int     `json:"protein"`
	Carbs           int     `json:"carbs"`
	Fat             int     `json:"fat"`
	PrepTimeMinutes int     `json:"prep_time_minutes"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	Kitchen         string  `json:"kitchen"`
	Active          bool    `json:"active"`
}
