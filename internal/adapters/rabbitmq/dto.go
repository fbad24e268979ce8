package rabbitmq

import (
	"fmt"
	"time"

	"catalog-service/internal/core/domain"
)

// ListingChangedEventDTO соответствует схеме ListingChangedEvent
type ListingChangedEventDTO struct {
	Event      string      `json:"event"`
	ListingID  string      `json:"listing_id"`
	OccurredAt *time.Time  `json:"occurred_at,omitempty"`
	Listing    *ListingDTO `json:"listing,omitempty"`
}

type ListingDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Location     string     `json:"location"`
	Type         string     `json:"type"`
	PropertyType string     `json:"property_type"`
	Beds         int        `json:"beds"`
	Baths        float64    `json:"baths"`
	Sqft         int        `json:"sqft"`
	Image        string     `json:"image"`
	Status       string     `json:"status"`
	OwnerID      string     `json:"owner_id"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func (dto ListingChangedEventDTO) toDomain() (domain.ListingEvent, error) {
	event := domain.ListingEvent{
		Type:      domain.ListingEventType(dto.Event),
		ListingID: dto.ListingID,
	}
	if dto.OccurredAt != nil {
		event.OccurredAt = *dto.OccurredAt
	}
	if event.Type != domain.ListingUpserted {
		return event, nil
	}
	if dto.Listing == nil {
		return domain.ListingEvent{}, fmt.Errorf("event %s for listing %q has no listing payload", dto.Event, dto.ListingID)
	}

	listing, err := domain.NewListing(dto.Listing.toDomain())
	if err != nil {
		return domain.ListingEvent{}, err
	}
	event.Listing = listing
	return event, nil
}

func (dto ListingDTO) toDomain() domain.Listing {
	l := domain.Listing{
		ID:           dto.ID,
		Title:        dto.Title,
		Description:  dto.Description,
		Price:        dto.Price,
		Location:     dto.Location,
		ListingType:  domain.ListingType(dto.Type),
		PropertyType: domain.PropertyType(dto.PropertyType),
		Beds:         dto.Beds,
		Baths:        dto.Baths,
		Sqft:         dto.Sqft,
		ImageURL:     dto.Image,
		Status:       domain.ListingStatus(dto.Status),
		OwnerID:      dto.OwnerID,
	}
	if dto.CreatedAt != nil {
		l.CreatedAt = *dto.CreatedAt
	}
	if dto.UpdatedAt != nil {
		l.UpdatedAt = *dto.UpdatedAt
	}
	return l
}
