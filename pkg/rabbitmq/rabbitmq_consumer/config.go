package rabbitmq_consumer

import (
	"errors"
	"fmt"

	"catalog-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumerConfig конфигурация для потребителя
type ConsumerConfig struct {
	rabbitmq_common.Config

	QueueName    string
	DurableQueue bool
	QueueArgs    amqp.Table

	// Обменник, к которому привязывается очередь. Объявляется, если задан тип.
	ExchangeName    string
	ExchangeType    string
	DurableExchange bool
	RoutingKey      string

	PrefetchCount int
	ConsumerTag   string

	// Ретраи через wait-очередь с TTL и финальную DLQ
	EnableRetryMechanism bool
	RetryExchange        string
	RetryQueue           string
	RetryTTL             int // миллисекунды
	FinalDLXExchange     string
	FinalDLQ             string
	FinalDLQRoutingKey   string
	MaxRetries           int

	Logger rabbitmq_common.Logger
}

func (cfg ConsumerConfig) Validate() error {
	if err := cfg.Config.Validate(); err != nil {
		return err
	}
	if cfg.QueueName == "" {
		return errors.New("queue name is required")
	}
	if cfg.ExchangeName != "" && cfg.RoutingKey == "" && cfg.ExchangeType != "fanout" {
		return fmt.Errorf("routing key is required to bind queue %q to exchange %q", cfg.QueueName, cfg.ExchangeName)
	}
	if cfg.EnableRetryMechanism {
		if cfg.RetryExchange == "" || cfg.RetryQueue == "" || cfg.FinalDLXExchange == "" || cfg.FinalDLQ == "" {
			return errors.New("retry mechanism requires retry exchange, retry queue, final DLX and final DLQ names")
		}
		if cfg.RetryTTL <= 0 {
			return errors.New("retry TTL must be positive")
		}
		if cfg.MaxRetries < 0 {
			return errors.New("max retries must not be negative")
		}
	}
	return nil
}
