package domain

// Criteria - провалидированный набор ограничений одного запроса.
// nil-указатель или пустая строка означают отсутствие ограничения.
type Criteria struct {
	LocationQuery string
	PriceMin      *float64
	PriceMax      *float64
	PropertyType  PropertyType
	ListingType   ListingType
	MinBeds       *int
	MinBaths      *float64
	MinSqft       *float64
}

// IsEmpty - true, если ни одно ограничение не задано
func (c Criteria) IsEmpty() bool {
	return c.LocationQuery == "" &&
		c.PriceMin == nil && c.PriceMax == nil &&
		c.PropertyType == "" && c.ListingType == "" &&
		c.MinBeds == nil && c.MinBaths == nil && c.MinSqft == nil
}

// SortOrdering - порядок выдачи после фильтрации
type SortOrdering string

const (
	SortNone              SortOrdering = "none"
	SortPriceAscending    SortOrdering = "price-ascending"
	SortPriceDescending   SortOrdering = "price-descending"
	SortRecencyDescending SortOrdering = "recency-descending"
)

// MatchResult - отфильтрованные объекты и счетчики для UI
type MatchResult struct {
	Listings   []Listing
	Considered int // сколько объектов просмотрено
	Matched    int // сколько прошло все предикаты
}

// PaginatedResult - страница результата поиска
type PaginatedResult struct {
	Listings     []Listing
	Considered   int
	Matched      int
	CurrentPage  int
	ItemsPerPage int
}
