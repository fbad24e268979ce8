package query

import (
	"cmp"
	"slices"
	"strconv"

	"catalog-service/internal/core/domain"
)

// Sort упорядочивает результат. При равенстве основного ключа
// объекты идут по возрастанию ID (см. CompareIDs), так что порядок полностью детерминирован.
// SortNone (и неизвестный порядок) оставляет порядок фильтрации.
func Sort(result domain.MatchResult, ordering domain.SortOrdering) domain.MatchResult {
	sorted := slices.Clone(result.Listings)
	if sorted == nil {
		sorted = []domain.Listing{}
	}

	var primary func(a, b domain.Listing) int
	switch ordering {
	case domain.SortPriceAscending:
		primary = func(a, b domain.Listing) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceDescending:
		primary = func(a, b domain.Listing) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortRecencyDescending:
		primary = func(a, b domain.Listing) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}

	if primary != nil {
		slices.SortStableFunc(sorted, func(a, b domain.Listing) int {
			if c := primary(a, b); c != 0 {
				return c
			}
			return CompareIDs(a.ID, b.ID)
		})
	}

	return domain.MatchResult{
		Listings:   sorted,
		Considered: result.Considered,
		Matched:    result.Matched,
	}
}

// CompareIDs сравнивает ID как целые числа, если оба ими являются ("9" < "10"),
// иначе побайтово. Числовой ID всегда идет раньше нечислового.
func CompareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
		// "7" и "007"
		return cmp.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}
