package domain

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// ListingType - тип сделки: продажа или аренда
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// PropertyType - категория объекта недвижимости
type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeCondo      PropertyType = "condo"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeTownhouse  PropertyType = "townhouse"
	PropertyTypeLand       PropertyType = "land"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypePenthouse  PropertyType = "penthouse"
)

// ListingStatus - статус объявления в системе-источнике
type ListingStatus string

const (
	ListingStatusActive        ListingStatus = "active"
	ListingStatusUnderContract ListingStatus = "under_contract"
	ListingStatusSold          ListingStatus = "sold"
	ListingStatusInactive      ListingStatus = "inactive"
)

var (
	propertyTypesMu sync.RWMutex
	propertyTypes   = map[PropertyType]struct{}{
		PropertyTypeHouse:      {},
		PropertyTypeApartment:  {},
		PropertyTypeCondo:      {},
		PropertyTypeVilla:      {},
		PropertyTypeTownhouse:  {},
		PropertyTypeLand:       {},
		PropertyTypeCommercial: {},
		PropertyTypePenthouse:  {},
	}
)

// RegisterPropertyType расширяет множество допустимых категорий.
// Вызывается при старте, до обработки запросов.
func RegisterPropertyType(t PropertyType) {
	normalized := PropertyType(strings.ToLower(strings.TrimSpace(string(t))))
	if normalized == "" {
		return
	}
	propertyTypesMu.Lock()
	defer propertyTypesMu.Unlock()
	propertyTypes[normalized] = struct{}{}
}

// IsKnown сообщает, входит ли категория в множество допустимых
func (t PropertyType) IsKnown() bool {
	propertyTypesMu.RLock()
	defer propertyTypesMu.RUnlock()
	_, ok := propertyTypes[t]
	return ok
}

func (t ListingType) IsKnown() bool {
	return t == ListingTypeSale || t == ListingTypeRent
}

func (s ListingStatus) IsKnown() bool {
	switch s {
	case ListingStatusActive, ListingStatusUnderContract, ListingStatusSold, ListingStatusInactive:
		return true
	}
	return false
}

// Listing - один объект недвижимости в каталоге.
// После создания через NewListing не изменяется: обновления приходят
// из системы-источника в виде нового значения.
type Listing struct {
	ID           string
	Title        string
	Description  string
	Price        float64 // цена продажи или месячная аренда, см. ListingType
	Location     string
	ListingType  ListingType
	PropertyType PropertyType
	Beds         int
	Baths        float64 // шаг 0.5
	Sqft         int
	ImageURL     string
	Status       ListingStatus
	OwnerID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewListing проверяет инварианты и возвращает готовый Listing
func NewListing(l Listing) (Listing, error) {
	l.ID = strings.TrimSpace(l.ID)
	if l.ID == "" {
		return Listing{}, fmt.Errorf("listing id is required")
	}
	if strings.TrimSpace(l.Title) == "" {
		return Listing{}, fmt.Errorf("listing %s: title is required", l.ID)
	}
	if math.IsNaN(l.Price) || math.IsInf(l.Price, 0) || l.Price < 0 {
		return Listing{}, fmt.Errorf("listing %s: price must be a non-negative number, got %v", l.ID, l.Price)
	}
	if l.Beds < 0 {
		return Listing{}, fmt.Errorf("listing %s: beds must be non-negative, got %d", l.ID, l.Beds)
	}
	if math.IsNaN(l.Baths) || l.Baths < 0 || math.Mod(l.Baths*2, 1) != 0 {
		return Listing{}, fmt.Errorf("listing %s: baths must be a non-negative multiple of 0.5, got %v", l.ID, l.Baths)
	}
	if l.Sqft <= 0 {
		return Listing{}, fmt.Errorf("listing %s: sqft must be positive, got %d", l.ID, l.Sqft)
	}

	l.ListingType = ListingType(strings.ToLower(strings.TrimSpace(string(l.ListingType))))
	if !l.ListingType.IsKnown() {
		return Listing{}, fmt.Errorf("listing %s: unknown listing type %q", l.ID, l.ListingType)
	}
	l.PropertyType = PropertyType(strings.ToLower(strings.TrimSpace(string(l.PropertyType))))
	if !l.PropertyType.IsKnown() {
		return Listing{}, fmt.Errorf("listing %s: unknown property type %q", l.ID, l.PropertyType)
	}

	if l.Status == "" {
		l.Status = ListingStatusActive
	}
	if !l.Status.IsKnown() {
		return Listing{}, fmt.Errorf("listing %s: unknown status %q", l.ID, l.Status)
	}

	return l, nil
}
