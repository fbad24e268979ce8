package constants

// Exchange, в который система-источник публикует изменения объявлений
const (
	ListingsExchange     = "listings_exchange"
	ListingsExchangeType = "topic"
)

const (
	QueueListingEvents = "catalog_listing_events"

	// "listing.upserted", "listing.deleted"
	RoutingKeyListingEvents = "listing.*"
)

// Ретраи: сообщение ждет в wait-очереди RetryTTL и возвращается в основную
const (
	RetryExchange = "catalog_listing_events_retry_exchange"
	RetryQueue    = "catalog_listing_events_retry_wait"
	RetryTTL      = 10000
	MaxRetries    = 3
)

const (
	FinalDLXExchange   = "catalog_listing_events_final_dlx"
	FinalDLQ           = "catalog_listing_events_final_dlq"
	FinalDLQRoutingKey = "listings.dlq.key"
)

const ConsumerTagListingEvents = "catalog-listing-events"

// Заголовки сообщений
const (
	HeaderEventType    = "x-event-type"
	HeaderEventVersion = "x-event-version"
	HeaderTraceID      = "x-trace-id"

	DefaultEventType    = "ListingChangedEvent"
	DefaultEventVersion = "1.0.0"
)
