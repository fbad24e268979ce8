package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() Listing {
	return Listing{
		ID:           "7",
		Title:        "Ocean View Condo",
		Price:        4200,
		Location:     "Miami Beach, FL",
		ListingType:  ListingTypeRent,
		PropertyType: PropertyTypeCondo,
		Beds:         2,
		Baths:        1.5,
		Sqft:         900,
		Status:       ListingStatusActive,
	}
}

func TestNewListingRejectsBrokenInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Listing)
	}{
		{"empty id", func(l *Listing) { l.ID = "  " }},
		{"empty title", func(l *Listing) { l.Title = "" }},
		{"negative price", func(l *Listing) { l.Price = -1 }},
		{"nan price", func(l *Listing) { l.Price = math.NaN() }},
		{"infinite price", func(l *Listing) { l.Price = math.Inf(1) }},
		{"negative beds", func(l *Listing) { l.Beds = -1 }},
		{"quarter bath", func(l *Listing) { l.Baths = 1.25 }},
		{"negative baths", func(l *Listing) { l.Baths = -0.5 }},
		{"nan baths", func(l *Listing) { l.Baths = math.NaN() }},
		{"infinite baths", func(l *Listing) { l.Baths = math.Inf(1) }},
		{"zero sqft", func(l *Listing) { l.Sqft = 0 }},
		{"negative sqft", func(l *Listing) { l.Sqft = -10 }},
		{"unknown listing type", func(l *Listing) { l.ListingType = "lease" }},
		{"empty listing type", func(l *Listing) { l.ListingType = "" }},
		{"unknown property type", func(l *Listing) { l.PropertyType = "castle" }},
		{"unknown status", func(l *Listing) { l.Status = "archived" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			tt.mutate(&l)

			_, err := NewListing(l)
			assert.Error(t, err)
		})
	}
}

func TestNewListingAcceptsBoundaryValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Listing)
	}{
		{"free listing", func(l *Listing) { l.Price = 0 }},
		{"studio without bedrooms", func(l *Listing) { l.Beds = 0 }},
		{"no bathrooms", func(l *Listing) { l.Baths = 0 }},
		{"half bath", func(l *Listing) { l.Baths = 0.5 }},
		{"whole baths", func(l *Listing) { l.Baths = 3 }},
		{"one square foot", func(l *Listing) { l.Sqft = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			tt.mutate(&l)

			_, err := NewListing(l)
			assert.NoError(t, err)
		})
	}
}

func TestNewListingNormalizes(t *testing.T) {
	l := validListing()
	l.ID = " 7 "
	l.ListingType = " SALE "
	l.PropertyType = "Condo"
	l.Status = ""

	got, err := NewListing(l)
	require.NoError(t, err)

	assert.Equal(t, "7", got.ID)
	assert.Equal(t, ListingTypeSale, got.ListingType)
	assert.Equal(t, PropertyTypeCondo, got.PropertyType)
	assert.Equal(t, ListingStatusActive, got.Status)
}

func TestRegisterPropertyType(t *testing.T) {
	assert.False(t, PropertyType("houseboat").IsKnown())

	RegisterPropertyType(" Houseboat ")
	RegisterPropertyType("")

	assert.True(t, PropertyType("houseboat").IsKnown())
	assert.False(t, PropertyType("").IsKnown())

	l := validListing()
	l.PropertyType = "HOUSEBOAT"
	got, err := NewListing(l)
	require.NoError(t, err)
	assert.Equal(t, PropertyType("houseboat"), got.PropertyType)
}

func TestListingStatusIsKnown(t *testing.T) {
	for _, s := range []ListingStatus{ListingStatusActive, ListingStatusUnderContract, ListingStatusSold, ListingStatusInactive} {
		assert.True(t, s.IsKnown(), s)
	}
	assert.False(t, ListingStatus("Active").IsKnown())
}
