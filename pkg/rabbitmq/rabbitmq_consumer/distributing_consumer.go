package rabbitmq_consumer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"catalog-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. Пакет сам решает,
// делать ack, отправить на ретрай или в финальную DLQ.
type MessageHandler func(delivery amqp.Delivery) error

// ErrNonRetriable - обработчик оборачивает им ошибку, если повтор бессмыслен
// (сообщение не проходит схему). Такое сообщение сразу уходит в финальную DLQ.
var ErrNonRetriable = errors.New("non-retriable message")

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// DistributingConsumer обрабатывает каждое сообщение в своей горутине
type DistributingConsumer struct {
	config     ConsumerConfig
	connection *amqp.Connection
	channel    *amqp.Channel
	dlx        publisher
	queueName  string
	handler    MessageHandler
	logger     rabbitmq_common.Logger
	wg         sync.WaitGroup
}

func NewDistributingConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*DistributingConsumer, error) {
	if handler == nil {
		return nil, errors.New("distributing consumer: message handler is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("distributing consumer: invalid config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("distributing consumer: failed to get channel: %w", err)
	}

	c := &DistributingConsumer{
		config:     cfg,
		connection: conn,
		channel:    ch,
		dlx:        ch,
		queueName:  cfg.QueueName,
		handler:    handler,
		logger:     logger,
	}
	if err := c.setupTopology(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("distributing consumer: %w", err)
	}
	return c, nil
}

// setupTopology объявляет очередь, привязку и инфраструктуру ретраев
func (c *DistributingConsumer) setupTopology() error {
	cfg := c.config

	if cfg.PrefetchCount > 0 {
		if err := c.channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	queueArgs := amqp.Table{}
	for k, v := range cfg.QueueArgs {
		queueArgs[k] = v
	}

	if cfg.EnableRetryMechanism {
		// "мертвые" сообщения основной очереди уходят в retry-обменник
		queueArgs["x-dead-letter-exchange"] = cfg.RetryExchange

		if err := c.channel.ExchangeDeclare(cfg.FinalDLXExchange, "direct", true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare final DLX: %w", err)
		}
		if _, err := c.channel.QueueDeclare(cfg.FinalDLQ, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare final DLQ: %w", err)
		}
		if err := c.channel.QueueBind(cfg.FinalDLQ, cfg.FinalDLQRoutingKey, cfg.FinalDLXExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind final DLQ: %w", err)
		}

		if err := c.channel.ExchangeDeclare(cfg.RetryExchange, "fanout", true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare retry exchange: %w", err)
		}
		// wait-очередь возвращает сообщения прямо в основную очередь
		_, err := c.channel.QueueDeclare(cfg.RetryQueue, true, false, false, false, amqp.Table{
			"x-message-ttl":             int32(cfg.RetryTTL),
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": cfg.QueueName,
		})
		if err != nil {
			return fmt.Errorf("failed to declare retry-wait queue: %w", err)
		}
		if err := c.channel.QueueBind(cfg.RetryQueue, "", cfg.RetryExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind retry-wait queue: %w", err)
		}
	}

	c.logger.Debug("Declaring queue", "name", cfg.QueueName, "durable", cfg.DurableQueue)
	q, err := c.channel.QueueDeclare(cfg.QueueName, cfg.DurableQueue, false, false, false, queueArgs)
	if err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", cfg.QueueName, err)
	}
	c.queueName = q.Name

	if cfg.ExchangeName != "" {
		if cfg.ExchangeType != "" {
			if err := c.channel.ExchangeDeclare(cfg.ExchangeName, cfg.ExchangeType, cfg.DurableExchange, false, false, false, nil); err != nil {
				return fmt.Errorf("failed to declare exchange '%s': %w", cfg.ExchangeName, err)
			}
		}
		c.logger.Debug("Binding queue to exchange", "queue", c.queueName, "exchange", cfg.ExchangeName, "routing_key", cfg.RoutingKey)
		if err := c.channel.QueueBind(c.queueName, cfg.RoutingKey, cfg.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", c.queueName, cfg.ExchangeName, err)
		}
	}

	c.logger.Debug("Setup complete", "queue", c.queueName)
	return nil
}

// StartConsuming блокируется до отмены контекста или закрытия соединения
func (c *DistributingConsumer) StartConsuming(ctx context.Context) error {
	if c.channel == nil || c.connection == nil || c.connection.IsClosed() {
		return errors.New("distributing consumer: not connected")
	}

	msgs, err := c.channel.Consume(c.queueName, c.config.ConsumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("distributing consumer %s: failed to consume from '%s': %w", c.config.ConsumerTag, c.queueName, err)
	}
	c.logger.Info("Waiting for messages", "queue_name", c.queueName)

	notifyClose := c.connection.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Context cancelled, stopping consumer", "consumer_tag", c.config.ConsumerTag)
			return nil
		case amqpErr, ok := <-notifyClose:
			if !ok || amqpErr == nil {
				return errors.New("distributing consumer: connection closed")
			}
			c.logger.Error(amqpErr, "Connection closed for consumer", "consumer_tag", c.config.ConsumerTag)
			return amqpErr
		case d, ok := <-msgs:
			if !ok {
				c.logger.Info("Deliveries channel closed", "consumer_tag", c.config.ConsumerTag)
				return nil
			}
			c.wg.Add(1)
			go func(delivery amqp.Delivery) {
				defer c.wg.Done()
				c.handleDelivery(ctx, delivery)
			}(d)
		}
	}
}

func (c *DistributingConsumer) handleDelivery(ctx context.Context, d amqp.Delivery) {
	processErr := c.handler(d)
	if processErr == nil {
		if err := d.Ack(false); err != nil {
			c.logger.Error(err, "Failed to ack message", "delivery_tag", d.DeliveryTag)
		}
		return
	}

	c.logger.Error(processErr, "Handler error for message", "delivery_tag", d.DeliveryTag)

	if !c.config.EnableRetryMechanism {
		_ = d.Nack(false, false)
		return
	}

	deaths := getDeathCount(d, c.queueName)
	if !errors.Is(processErr, ErrNonRetriable) && deaths < int64(c.config.MaxRetries) {
		c.logger.Info("Retrying message", "delivery_tag", d.DeliveryTag, "death_count", deaths)
		_ = d.Nack(false, false)
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err := c.dlx.PublishWithContext(publishCtx, c.config.FinalDLXExchange, c.config.FinalDLQRoutingKey, false, false, amqp.Publishing{
		ContentType:  d.ContentType,
		Body:         d.Body,
		Headers:      d.Headers,
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		// не смогли положить в DLQ: пусть сообщение пройдет круг ретрая еще раз
		c.logger.Error(err, "Failed to publish to final DLX", "delivery_tag", d.DeliveryTag)
		_ = d.Nack(false, false)
		return
	}
	c.logger.Warn("Message moved to final DLQ", "delivery_tag", d.DeliveryTag, "death_count", deaths)
	_ = d.Ack(false)
}

// getDeathCount - сколько раз сообщение умирало в указанной очереди (заголовок x-death)
func getDeathCount(d amqp.Delivery, queueName string) int64 {
	deaths, ok := d.Headers["x-death"].([]interface{})
	if !ok {
		return 0
	}
	for _, death := range deaths {
		tbl, ok := death.(amqp.Table)
		if !ok {
			continue
		}
		if queue, _ := tbl["queue"].(string); queue != queueName {
			continue
		}
		if count, ok := tbl["count"].(int64); ok {
			return count
		}
	}
	return 0
}

// Close дожидается активных обработчиков и закрывает канал
func (c *DistributingConsumer) Close() error {
	c.wg.Wait()

	if c.channel == nil {
		return nil
	}
	err := c.channel.Close()
	c.channel = nil
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		c.logger.Error(err, "Error closing channel")
		return err
	}
	c.logger.Info("Consumer closed", "consumer_tag", c.config.ConsumerTag)
	return nil
}
