// Package openmensa integrates the OpenMensa v2 API: it fetches the raw meal
// records for a canteen day, folds them into a canonical per-category menu,
// and answers date queries through a small time-bounded cache.
package openmensa

// Meal is one raw meal record as served by the OpenMensa meals endpoint.
type Meal struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Name     string   `json:"name"`
	Prices   Prices   `json:"prices"`
	Notes    []string `json:"notes"`
}

// Prices carries the price groups OpenMensa publishes per meal. The bot only
// ever shows the student price.
type Prices struct {
	Students  *float64 `json:"students"`
	Employees *float64 `json:"employees"`
	Pupils    *float64 `json:"pupils"`
	Others    *float64 `json:"others"`
}

// MealGroup aggregates every offering of one menu category on one day.
type MealGroup struct {
	// Names holds one cleaned-up dish description per offering, in the
	// order the upstream listed them.
	Names []string

	// Price is the student price for the category, or nil when the
	// upstream does not price it. Side-dish categories come unpriced.
	Price *float64

	// Notes holds the dietary annotations per offering, index-aligned
	// with Names.
	Notes [][]string
}

// Menu maps a category name ("Tellergericht", "Pasta", ...) to the offerings
// of that category. A missing category was not offered that day.
type Menu map[string]*MealGroup
