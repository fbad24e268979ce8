package usecase

import (
	"context"
	"fmt"
	"time"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

var ErrUnknownEventType = fmt.Errorf("%w: unknown type", domain.ErrInvalidEvent)

// ApplyListingEventUseCase применяет изменение из системы-источника к каталогу
type ApplyListingEventUseCase struct {
	stores []port.ListingWriterPort
	now    func() time.Time
}

// NewApplyListingEventUseCase: событие применяется к каждому хранилищу по порядку
func NewApplyListingEventUseCase(stores ...port.ListingWriterPort) *ApplyListingEventUseCase {
	return &ApplyListingEventUseCase{stores: stores, now: time.Now}
}

func (uc *ApplyListingEventUseCase) Execute(ctx context.Context, event domain.ListingEvent) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ApplyListingEvent",
		"event_type": string(event.Type),
		"listing_id": event.ListingID,
	})
	ucLogger.Info("Use case started", nil)

	switch event.Type {
	case domain.ListingUpserted:
		if event.Listing.ID != event.ListingID {
			ucLogger.Warn("Payload id does not match event id", port.Fields{"payload_id": event.Listing.ID})
			return fmt.Errorf("%w: event listing id %q does not match payload id %q", domain.ErrInvalidEvent, event.ListingID, event.Listing.ID)
		}
	case domain.ListingDeleted:
	default:
		ucLogger.Warn("Unknown event type", nil)
		return fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}

	// без метки времени событие считается случившимся сейчас
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = uc.now().UTC()
	}
	listing := event.Listing
	if event.Type == domain.ListingUpserted && listing.UpdatedAt.IsZero() {
		listing.UpdatedAt = occurredAt
	}

	for _, store := range uc.stores {
		var err error
		if event.Type == domain.ListingDeleted {
			err = store.Delete(ctx, event.ListingID, occurredAt)
		} else {
			err = store.Upsert(ctx, listing)
		}
		if err != nil {
			ucLogger.Error("Listing store returned an error", err, nil)
			return fmt.Errorf("failed to apply %s for listing %q: %w", event.Type, event.ListingID, err)
		}
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
