package domain

// RangeResult - минимум и максимум числового поля
type RangeResult struct {
	Min, Max float64
}

// FilterOptionsResult - варианты для селектов формы поиска
type FilterOptionsResult struct {
	Price         *RangeResult // nil, если ничего не найдено
	PropertyTypes []PropertyType
	ListingTypes  []ListingType
	Beds          []int
	Baths         []float64
	Count         int
}
