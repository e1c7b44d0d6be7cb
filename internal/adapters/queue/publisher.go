// Package queue publishes chart change notifications to RabbitMQ so the
// presentation layer and messaging services can react to layout and
// assignment changes without polling.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"venueseating/internal/domain"
)

// chartUpdatedQueue is the durable queue chart.updated events land on.
const chartUpdatedQueue = "chart.updated"

type amqpPublisher struct {
	url    string
	logger *slog.Logger
}

// NewAMQPPublisher returns a ChartEventPublisher that publishes to the
// broker at url. Connections are opened per publish; chart edits are
// operator-paced, so connection churn is not a concern here.
func NewAMQPPublisher(url string, logger *slog.Logger) domain.ChartEventPublisher {
	return &amqpPublisher{url: url, logger: logger}
}

func (p *amqpPublisher) PublishChartUpdated(ctx context.Context, event domain.ChartUpdatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(chartUpdatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", chartUpdatedQueue, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	p.logger.DebugContext(ctx, "published chart.updated", "chart_id", event.ChartID, "reason", event.Reason)
	return nil
}
