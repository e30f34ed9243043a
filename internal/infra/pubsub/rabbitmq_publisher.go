package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"bazaar/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// rabbitMQPublisher implements EventPublisher on top of a RabbitMQ queue.
// Messages are published persistent so they survive a broker restart.
type rabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

// NewRabbitMQPublisher connects to the broker and declares the order queue.
// When deadLetterQueue is non-empty, a dead letter exchange and queue are
// declared and failed deliveries from the order queue are routed there.
func NewRabbitMQPublisher(url, queue, deadLetterQueue string, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to rabbitmq")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "failed to open rabbitmq channel")
	}

	queueArgs := amqp.Table{}

	if deadLetterQueue != "" {
		dlxName := deadLetterQueue + "_exchange"

		if err := channel.ExchangeDeclare(
			dlxName,
			"direct",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			channel.Close()
			conn.Close()

			return nil, errors.Wrap(err, "failed to declare dead letter exchange")
		}

		if _, err := channel.QueueDeclare(
			deadLetterQueue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		); err != nil {
			channel.Close()
			conn.Close()

			return nil, errors.Wrap(err, "failed to declare dead letter queue")
		}

		if err := channel.QueueBind(deadLetterQueue, "", dlxName, false, nil); err != nil {
			channel.Close()
			conn.Close()

			return nil, errors.Wrap(err, "failed to bind dead letter queue")
		}

		queueArgs["x-dead-letter-exchange"] = dlxName
		queueArgs["x-dead-letter-routing-key"] = deadLetterQueue
	}

	if _, err := channel.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		queueArgs,
	); err != nil {
		channel.Close()
		conn.Close()

		return nil, errors.Wrap(err, "failed to declare order queue")
	}

	logger.Info("RabbitMQ publisher initialized",
		slog.String("queue", queue),
	)

	return &rabbitMQPublisher{
		conn:    conn,
		channel: channel,
		queue:   queue,
		logger:  logger,
	}, nil
}

// PublishOrderEvent publishes an event to the order queue as persistent JSON
func (p *rabbitMQPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	headers := amqp.Table{
		"event_type": event.EventType,
		"order_id":   event.OrderID,
	}
	if event.RequestID != "" {
		headers["request_id"] = event.RequestID
	}

	p.logger.Info("[RabbitMQ] Publishing event",
		slog.String("event_type", event.EventType),
		slog.String("order_id", event.OrderID),
	)

	err = p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key is the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			ContentType:  "application/json",
			Body:         body,
			Headers:      headers,
		},
	)
	if err != nil {
		return errors.Wrap(err, "failed to publish order event")
	}

	p.logger.Info("[RabbitMQ] Event published successfully",
		slog.String("order_id", event.OrderID),
	)

	return nil
}

// Close releases the channel and connection
func (p *rabbitMQPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return errors.WithStack(err)
		}
	}
	if p.conn != nil {
		return errors.WithStack(p.conn.Close())
	}

	return nil
}
