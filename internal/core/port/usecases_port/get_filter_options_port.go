package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/query"
)

type GetFilterOptionsUseCase interface {
	Execute(ctx context.Context, raw query.RawInput) (*domain.FilterOptionsResult, error)
}
