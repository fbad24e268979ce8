package domain

import (
	"errors"
	"time"
)

// ErrInvalidEvent - событие не может быть применено ни при каком повторе
var ErrInvalidEvent = errors.New("invalid listing event")

// ListingEventType - тип события об изменении объявления
type ListingEventType string

const (
	ListingUpserted ListingEventType = "listing.upserted"
	ListingDeleted  ListingEventType = "listing.deleted"
)

// ListingEvent приходит из системы-источника, когда объявление меняется.
// Для удаления Listing не заполнен.
type ListingEvent struct {
	Type       ListingEventType
	ListingID  string
	Listing    Listing
	OccurredAt time.Time
}
