package port

import (
	"context"
	"time"

	"catalog-service/internal/core/domain"
)

// ListingSourcePort отдает текущий каталог объявлений.
// Возвращаемый срез принадлежит вызывающему, источник его не меняет.
type ListingSourcePort interface {
	All(ctx context.Context) ([]domain.Listing, error)

	// GetByID возвращает domain.ErrListingNotFound, если объявления нет
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
}

// ListingWriterPort применяет изменения отдельных объявлений.
// Запись с более старым UpdatedAt, чем уже сохраненная или удаление, игнорируется.
type ListingWriterPort interface {
	Upsert(ctx context.Context, listing domain.Listing) error

	// Delete отсутствующего объявления не считается ошибкой
	Delete(ctx context.Context, id string, deletedAt time.Time) error
}

// ListingStorePort - изменяемый каталог, который можно загрузить целиком
type ListingStorePort interface {
	ListingWriterPort
	ReplaceAll(ctx context.Context, listings []domain.Listing) error
}
