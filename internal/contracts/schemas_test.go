package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	eventType    = "ListingChangedEvent"
	eventVersion = "1.0.0"
)

func TestKeyFromPath(t *testing.T) {
	assert.Equal(t, "ListingChangedEvent/1.0.0", keyFromPath("schemas/events/listing-changed/v1.json"))
	assert.Equal(t, "PriceDropEvent/2.0.0", keyFromPath("schemas/events/price-drop/v2.json"))
	assert.Empty(t, keyFromPath("schemas/events/flat.json"))
}

func TestSchemasAreRegistered(t *testing.T) {
	assert.Contains(t, KnownEvents(), "ListingChangedEvent/1.0.0")
}

func TestValidateEvent(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "upsert",
			body: `{"event":"listing.upserted","listing_id":"p1","occurred_at":"2024-05-01T10:00:00Z",
				"listing":{"id":"p1","title":"Loft","price":3800,"location":"Miami, FL","type":"rent",
				"property_type":"apartment","beds":1,"baths":1.5,"sqft":750,"status":"active"}}`,
		},
		{
			name: "delete without listing",
			body: `{"event":"listing.deleted","listing_id":"p1"}`,
		},
		{
			name:    "upsert without listing",
			body:    `{"event":"listing.upserted","listing_id":"p1"}`,
			wantErr: true,
		},
		{
			name:    "unknown event",
			body:    `{"event":"listing.archived","listing_id":"p1"}`,
			wantErr: true,
		},
		{
			name: "baths not in half steps",
			body: `{"event":"listing.upserted","listing_id":"p1",
				"listing":{"id":"p1","title":"Loft","price":1,"location":"x","type":"sale",
				"property_type":"condo","beds":1,"baths":1.3,"sqft":10}}`,
			wantErr: true,
		},
		{
			name: "negative price",
			body: `{"event":"listing.upserted","listing_id":"p1",
				"listing":{"id":"p1","title":"Loft","price":-1,"location":"x","type":"sale",
				"property_type":"condo","beds":1,"baths":1,"sqft":10}}`,
			wantErr: true,
		},
		{
			name:    "broken timestamp",
			body:    `{"event":"listing.deleted","listing_id":"p1","occurred_at":"yesterday"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			body:    `{"event":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEvent(eventType, eventVersion, []byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateEventUnknownSchema(t *testing.T) {
	err := ValidateEvent("ListingChangedEvent", "9.0.0", []byte(`{}`))
	assert.ErrorContains(t, err, "not found")
}
