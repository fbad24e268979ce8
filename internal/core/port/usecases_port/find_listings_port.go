package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/query"
)

// FindListingsRequest - сырые параметры поиска и пагинация
type FindListingsRequest struct {
	Criteria query.RawInput
	Sort     string
	Limit    int
	Offset   int
}

type FindListingsUseCase interface {
	Execute(ctx context.Context, req FindListingsRequest) (*domain.PaginatedResult, error)
}
