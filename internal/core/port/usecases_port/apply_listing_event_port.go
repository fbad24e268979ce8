package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
)

type ApplyListingEventUseCase interface {
	Execute(ctx context.Context, event domain.ListingEvent) error
}
