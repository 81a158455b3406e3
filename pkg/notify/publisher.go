// Package notify publishes allocation events to RabbitMQ so the mailer can
// alert administrators. Notification delivery is strictly best-effort: a nil
// publisher drops events silently and publish failures are logged, never
// returned, so losing the broker cannot fail an allocation.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueueName is the durable queue the mailer consumes from.
const QueueName = "allocation_events"

const (
	EventAllocationCompleted = "allocation_completed"
	EventShiftsUnallocated   = "shifts_unallocated"
)

// Event is one allocation outcome worth telling administrators about.
type Event struct {
	Type          string   `json:"type"`
	Message       string   `json:"message"`
	AllocationIDs []string `json:"allocation_ids,omitempty"`
	ShiftIDs      []string `json:"shift_ids,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}

// AllocationCompleted reports a finished auto-allocation run.
func AllocationCompleted(message string, allocationIDs []string) Event {
	return Event{
		Type:          EventAllocationCompleted,
		Message:       message,
		AllocationIDs: allocationIDs,
		OccurredAt:    time.Now().Format(time.RFC3339),
	}
}

// ShiftsUnallocated reports shifts a run could not fill.
func ShiftsUnallocated(shiftIDs []string) Event {
	return Event{
		Type:       EventShiftsUnallocated,
		Message:    fmt.Sprintf("%d shifts could not be allocated", len(shiftIDs)),
		ShiftIDs:   shiftIDs,
		OccurredAt: time.Now().Format(time.RFC3339),
	}
}

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher pushes allocation events onto the notification queue.
type Publisher struct {
	channel Channel
	logger  *zap.Logger
}

// NewPublisher declares the durable event queue and returns a publisher
// bound to it.
func NewPublisher(channel Channel, logger *zap.Logger) (*Publisher, error) {
	if _, err := channel.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare %s queue: %w", QueueName, err)
	}

	return &Publisher{channel: channel, logger: logger}, nil
}

// Publish sends one event to the queue. Safe on a nil publisher.
func (p *Publisher) Publish(ctx context.Context, event Event) {
	if p == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("Failed to encode allocation event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		p.logger.Warn("Failed to publish allocation event", zap.String("type", event.Type), zap.Error(err))
		return
	}

	p.logger.Debug("Published allocation event", zap.String("type", event.Type))
}
