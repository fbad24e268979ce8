package usecase

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/port/usecases_port"
	"catalog-service/internal/core/query"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type FindListingsUseCase struct {
	source port.ListingSourcePort
	engine *query.Engine
}

func NewFindListingsUseCase(source port.ListingSourcePort, engine *query.Engine) *FindListingsUseCase {
	if engine == nil {
		engine = query.NewEngine(nil)
	}
	return &FindListingsUseCase{source: source, engine: engine}
}

// Execute возвращает domain.ValidationErrors как есть, чтобы REST мог отдать 400 по полям
func (uc *FindListingsUseCase) Execute(ctx context.Context, req usecases_port.FindListingsRequest) (*domain.PaginatedResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "FindListings",
		"criteria": req.Criteria,
		"sort":     req.Sort,
		"limit":    req.Limit,
		"offset":   req.Offset,
	})
	ucLogger.Info("Use case started", nil)

	criteria, verrs := query.ValidateCriteria(req.Criteria)
	ordering, sortErr := query.ParseSortOrdering(req.Sort)
	var sortVerrs domain.ValidationErrors
	if errors.As(sortErr, &sortVerrs) {
		verrs = append(verrs, sortVerrs...)
	}
	if len(verrs) > 0 {
		ucLogger.Warn("Invalid search criteria", port.Fields{"errors": len(verrs)})
		return nil, verrs
	}

	limit, offset := normalizePage(req.Limit, req.Offset)

	listings, err := uc.source.All(ctx)
	if err != nil {
		ucLogger.Error("Listing source returned an error", err, nil)
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	result := uc.engine.FilterAndSort(listings, criteria, ordering)

	page := []domain.Listing{}
	if offset < len(result.Listings) {
		end := min(offset+limit, len(result.Listings))
		page = result.Listings[offset:end]
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"considered":    result.Considered,
		"matched":       result.Matched,
		"items_on_page": len(page),
	})

	return &domain.PaginatedResult{
		Listings:     page,
		Considered:   result.Considered,
		Matched:      result.Matched,
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPerPage
	}
	if limit > MaxPerPage {
		limit = MaxPerPage
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
