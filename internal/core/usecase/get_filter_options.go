package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/query"
)

// GetFilterOptionsUseCase собирает варианты для селектов формы поиска
// по объявлениям, которые уже прошли текущие критерии
type GetFilterOptionsUseCase struct {
	source port.ListingSourcePort
	engine *query.Engine
}

func NewGetFilterOptionsUseCase(source port.ListingSourcePort, engine *query.Engine) *GetFilterOptionsUseCase {
	if engine == nil {
		engine = query.NewEngine(nil)
	}
	return &GetFilterOptionsUseCase{source: source, engine: engine}
}

func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context, raw query.RawInput) (*domain.FilterOptionsResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetFilterOptions",
	})
	ucLogger.Info("Use case started", nil)

	criteria, verrs := query.ValidateCriteria(raw)
	if len(verrs) > 0 {
		return nil, verrs
	}

	listings, err := uc.source.All(ctx)
	if err != nil {
		ucLogger.Error("Listing source returned an error", err, nil)
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	matched := uc.engine.FilterAndSort(listings, criteria, domain.SortNone).Listings
	result := collectOptions(matched)

	ucLogger.Info("Use case finished successfully", port.Fields{"count": result.Count})
	return result, nil
}

func collectOptions(listings []domain.Listing) *domain.FilterOptionsResult {
	result := &domain.FilterOptionsResult{
		PropertyTypes: []domain.PropertyType{},
		ListingTypes:  []domain.ListingType{},
		Beds:          []int{},
		Baths:         []float64{},
		Count:         len(listings),
	}
	if len(listings) == 0 {
		return result
	}

	price := domain.RangeResult{Min: listings[0].Price, Max: listings[0].Price}
	propertyTypes := map[domain.PropertyType]struct{}{}
	listingTypes := map[domain.ListingType]struct{}{}
	beds := map[int]struct{}{}
	baths := map[float64]struct{}{}

	for _, l := range listings {
		price.Min = min(price.Min, l.Price)
		price.Max = max(price.Max, l.Price)
		propertyTypes[l.PropertyType] = struct{}{}
		listingTypes[l.ListingType] = struct{}{}
		beds[l.Beds] = struct{}{}
		baths[l.Baths] = struct{}{}
	}

	result.Price = &price
	result.PropertyTypes = sortedKeys(propertyTypes)
	result.ListingTypes = sortedKeys(listingTypes)
	result.Beds = sortedKeys(beds)
	result.Baths = sortedKeys(baths)
	return result
}

func sortedKeys[K cmp.Ordered](m map[K]struct{}) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
