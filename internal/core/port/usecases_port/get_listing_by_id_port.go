package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type GetListingByIDUseCase interface {
	Execute(ctx context.Context, id string) (*domain.Listing, error)
}
