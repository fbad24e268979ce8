package query

import (
	"testing"

	"catalog-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestCompileSkipsAbsentFields(t *testing.T) {
	assert.Empty(t, Compile(domain.Criteria{}))
}

func TestCompileOrder(t *testing.T) {
	c := domain.Criteria{
		LocationQuery: "tx",
		PriceMin:      ptr(1.0),
		PriceMax:      ptr(2.0),
		PropertyType:  domain.PropertyTypeHouse,
		ListingType:   domain.ListingTypeSale,
		MinBeds:       ptr(1),
		MinBaths:      ptr(1.0),
		MinSqft:       ptr(100.0),
	}

	assert.Equal(t,
		[]string{"location", "price_min", "price_max", "property_type", "listing_type", "min_beds", "min_baths", "min_sqft"},
		PredicateNames(Compile(c)))
}

func TestLocationPredicateIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		query    string
		location string
		want     bool
	}{
		{"miami", "Miami Beach", true},
		{"BEACH", "Miami Beach", true},
		{"ami be", "Miami Beach", true},
		{"austin", "Miami Beach", false},
		{"zürich", "ZÜRICH", true},
	}

	for _, tt := range tests {
		p := Compile(domain.Criteria{LocationQuery: tt.query})
		got := p[0].Test(domain.Listing{Location: tt.location})
		assert.Equal(t, tt.want, got, "query=%q location=%q", tt.query, tt.location)
	}
}

func TestThresholdSemantics(t *testing.T) {
	listings := []domain.Listing{
		{ID: "one", Beds: 1},
		{ID: "two", Beds: 2},
		{ID: "three", Beds: 3},
	}

	result := Match(listings, Compile(domain.Criteria{MinBeds: ptr(2)}))

	assert.Equal(t, []string{"two", "three"}, ids(result.Listings))
}

func TestPriceBoundsAreInclusive(t *testing.T) {
	listings := []domain.Listing{
		{ID: "low", Price: 500000},
		{ID: "mid", Price: 750000},
		{ID: "high", Price: 1000000},
		{ID: "over", Price: 1000001},
	}

	result := Match(listings, Compile(domain.Criteria{PriceMin: ptr(500000.0), PriceMax: ptr(1000000.0)}))

	assert.Equal(t, []string{"low", "mid", "high"}, ids(result.Listings))
}

func TestBathThresholdAcceptsHalfSteps(t *testing.T) {
	listings := []domain.Listing{
		{ID: "a", Baths: 1},
		{ID: "b", Baths: 1.5},
		{ID: "c", Baths: 2},
	}

	result := Match(listings, Compile(domain.Criteria{MinBaths: ptr(1.5)}))

	assert.Equal(t, []string{"b", "c"}, ids(result.Listings))
}

func TestCompileIsDeterministic(t *testing.T) {
	c := domain.Criteria{LocationQuery: "austin", MinBeds: ptr(2), ListingType: domain.ListingTypeRent}
	first, second := Compile(c), Compile(c)

	for _, l := range sampleCatalog() {
		for i := range first {
			assert.Equal(t, first[i].Test(l), second[i].Test(l))
		}
	}
}

func TestMatchPreservesInputOrder(t *testing.T) {
	catalog := sampleCatalog()
	reversed := make([]domain.Listing, len(catalog))
	for i, l := range catalog {
		reversed[len(catalog)-1-i] = l
	}

	result := Match(reversed, Compile(domain.Criteria{ListingType: domain.ListingTypeSale}))

	assert.Equal(t, []string{"p4", "p2", "p1"}, ids(result.Listings))
}
