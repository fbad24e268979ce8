package query

import (
	"strings"

	"catalog-service/internal/core/domain"

	"golang.org/x/text/cases"
)

// Rule - чистая проверка одного объекта по одному полю критериев
type Rule[T any] struct {
	Name string
	Test func(T) bool
}

// Predicate - правило для объявления
type Predicate = Rule[domain.Listing]

// Compile строит предикаты для заданных полей Criteria.
// Для отсутствующего поля предикат не создается.
func Compile(c domain.Criteria) []Predicate {
	predicates := make([]Predicate, 0, 8)

	if c.LocationQuery != "" {
		needle := foldCase(c.LocationQuery)
		predicates = append(predicates, Predicate{
			Name: "location",
			Test: func(l domain.Listing) bool {
				return strings.Contains(foldCase(l.Location), needle)
			},
		})
	}

	if c.PriceMin != nil {
		min := *c.PriceMin
		predicates = append(predicates, Predicate{
			Name: "price_min",
			Test: func(l domain.Listing) bool { return l.Price >= min },
		})
	}
	if c.PriceMax != nil {
		max := *c.PriceMax
		predicates = append(predicates, Predicate{
			Name: "price_max",
			Test: func(l domain.Listing) bool { return l.Price <= max },
		})
	}

	if c.PropertyType != "" {
		pt := c.PropertyType
		predicates = append(predicates, Predicate{
			Name: "property_type",
			Test: func(l domain.Listing) bool { return l.PropertyType == pt },
		})
	}
	if c.ListingType != "" {
		lt := c.ListingType
		predicates = append(predicates, Predicate{
			Name: "listing_type",
			Test: func(l domain.Listing) bool { return l.ListingType == lt },
		})
	}

	// Пороговые фильтры: "не меньше", а не "ровно"
	if c.MinBeds != nil {
		beds := *c.MinBeds
		predicates = append(predicates, Predicate{
			Name: "min_beds",
			Test: func(l domain.Listing) bool { return l.Beds >= beds },
		})
	}
	if c.MinBaths != nil {
		baths := *c.MinBaths
		predicates = append(predicates, Predicate{
			Name: "min_baths",
			Test: func(l domain.Listing) bool { return l.Baths >= baths },
		})
	}
	if c.MinSqft != nil {
		sqft := *c.MinSqft
		predicates = append(predicates, Predicate{
			Name: "min_sqft",
			Test: func(l domain.Listing) bool { return float64(l.Sqft) >= sqft },
		})
	}

	return predicates
}

// PredicateNames - имена правил для логов
func PredicateNames[T any](rules []Rule[T]) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// cases.Caser хранит состояние, поэтому на каждый вызов создается новый
func foldCase(s string) string {
	return cases.Fold().String(s)
}
