package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"catalog-service/internal/constants"
	"catalog-service/internal/contextkeys"
	"catalog-service/internal/contracts"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/port/usecases_port"
	"catalog-service/pkg/rabbitmq/rabbitmq_common"
	"catalog-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type consumer interface {
	StartConsuming(ctx context.Context) error
	Close() error
}

// ListingEventsConsumerAdapter - входящий адаптер: слушает очередь
// изменений объявлений и применяет их к каталогу
type ListingEventsConsumerAdapter struct {
	consumer consumer
	useCase  usecases_port.ApplyListingEventUseCase
	logger   port.LoggerPort
}

func NewListingEventsConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.ApplyListingEventUseCase,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*ListingEventsConsumerAdapter, error) {

	adapter := &ListingEventsConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_distributing_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	c, err := rabbitmq_consumer.NewDistributingConsumer(consumerCfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for listing events: %w", err)
	}
	adapter.consumer = c

	return adapter, nil
}

func (a *ListingEventsConsumerAdapter) messageHandler(d amqp.Delivery) error {
	traceID, ok := d.Headers[constants.HeaderTraceID].(string)
	if !ok || traceID == "" {
		traceID = uuid.New().String()
	}

	ctx, traceLogger := contextkeys.WithTrace(context.Background(), a.logger, traceID)
	msgLogger := traceLogger.WithFields(port.Fields{
		"delivery_tag": d.DeliveryTag,
		"routing_key":  d.RoutingKey,
	})
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)

	eventType := headerOr(d.Headers, constants.HeaderEventType, constants.DefaultEventType)
	eventVersion := headerOr(d.Headers, constants.HeaderEventVersion, constants.DefaultEventVersion)

	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed schema validation, sending to DLQ", err, nil)
		return fmt.Errorf("%w: %v", rabbitmq_consumer.ErrNonRetriable, err)
	}

	var dto ListingChangedEventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		msgLogger.Error("Error unmarshalling DTO", err, nil)
		return fmt.Errorf("%w: unmarshal DTO: %v", rabbitmq_consumer.ErrNonRetriable, err)
	}

	event, err := dto.toDomain()
	if err != nil {
		msgLogger.Error("Listing in event is invalid", err, port.Fields{"listing_id": dto.ListingID})
		return fmt.Errorf("%w: %v", rabbitmq_consumer.ErrNonRetriable, err)
	}
	// повтор из retry-очереди сохраняет timestamp исходного сообщения
	if event.OccurredAt.IsZero() && !d.Timestamp.IsZero() {
		event.OccurredAt = d.Timestamp
	}

	eventLogger := msgLogger.WithFields(port.Fields{
		"event":      string(event.Type),
		"listing_id": event.ListingID,
	})
	ctx = contextkeys.ContextWithLogger(ctx, eventLogger)

	if err := a.useCase.Execute(ctx, event); err != nil {
		if errors.Is(err, domain.ErrInvalidEvent) {
			eventLogger.Error("Event rejected by use case, sending to DLQ", err, nil)
			return fmt.Errorf("%w: %v", rabbitmq_consumer.ErrNonRetriable, err)
		}
		eventLogger.Error("Use case failed, message will be retried", err, nil)
		return err
	}

	eventLogger.Info("Listing event applied", nil)
	return nil
}

func headerOr(headers amqp.Table, key, fallback string) string {
	if v, ok := headers[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func (a *ListingEventsConsumerAdapter) Name() string {
	return "Listing Events Listener"
}

// Start реализует EventListenerPort
func (a *ListingEventsConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort
func (a *ListingEventsConsumerAdapter) Close() error {
	return a.consumer.Close()
}
