// The mailer consumes allocation events from RabbitMQ and emails them to
// the administrator. Unparsable events are dropped; delivery failures are
// requeued.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/arivanan0218/hospital-staff-allocation-ai/internal/config"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/notify"
	"github.com/arivanan0218/hospital-staff-allocation-ai/pkg/utils/logging"
)

const dialTimeout = 10 * time.Second

func main() {
	logger, err := logging.InitLogger("mailer")
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.SMTPHost == "" || cfg.AdminEmail == "" {
		logger.Fatal("SMTP host and admin email must be configured")
	}
	if cfg.RabbitMQURL == "" {
		logger.Fatal("RabbitMQ URL must be configured")
	}

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithPort(cfg.SMTPPort),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		logger.Fatal("Failed to create mail client", zap.Error(err))
	}
	defer client.Close()

	dialCtx, cancelDial := context.WithTimeout(context.Background(), dialTimeout)
	defer cancelDial()
	if err := client.DialWithContext(dialCtx); err != nil {
		logger.Fatal("Failed to connect to mail server", zap.Error(err))
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", zap.Error(err))
	}
	defer channel.Close()

	queue, err := channel.QueueDeclare(notify.QueueName, true, false, false, false, nil)
	if err != nil {
		logger.Fatal("Failed to declare queue", zap.Error(err))
	}

	deliveries, err := channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatal("Failed to start consuming", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery := <-deliveries:
				handleDelivery(client, cfg, logger, delivery)
			}
		}
	}()

	logger.Info("Waiting for allocation events", zap.String("queue", queue.Name))
	<-quit

	logger.Info("Shutting down mailer")
	cancel()
	wg.Wait()
	logger.Info("Mailer stopped")
}

func handleDelivery(client *mail.Client, cfg *config.Config, logger *zap.Logger, delivery amqp.Delivery) {
	var event notify.Event
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		logger.Error("Failed to decode allocation event", zap.Error(err))
		_ = delivery.Nack(false, false)
		return
	}

	msg, err := buildMessage(cfg, event)
	if err != nil {
		logger.Error("Failed to build notification email", zap.Error(err))
		_ = delivery.Nack(false, false)
		return
	}

	if err := client.DialAndSend(msg); err != nil {
		logger.Error("Failed to send notification email", zap.Error(err))
		_ = delivery.Nack(false, true)
		return
	}

	logger.Info("Sent allocation notification",
		zap.String("type", event.Type),
		zap.String("to", cfg.AdminEmail))
	_ = delivery.Ack(false)
}

func buildMessage(cfg *config.Config, event notify.Event) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(cfg.SMTPUsername); err != nil {
		return nil, fmt.Errorf("failed to set sender: %w", err)
	}
	if err := msg.To(cfg.AdminEmail); err != nil {
		return nil, fmt.Errorf("failed to set recipient: %w", err)
	}

	var body strings.Builder
	body.WriteString(event.Message)
	body.WriteString("\n\nOccurred at: ")
	body.WriteString(event.OccurredAt)
	if len(event.AllocationIDs) > 0 {
		body.WriteString("\n\nAllocations:\n")
		for _, id := range event.AllocationIDs {
			body.WriteString("  - " + id + "\n")
		}
	}
	if len(event.ShiftIDs) > 0 {
		body.WriteString("\n\nUnfilled shifts:\n")
		for _, id := range event.ShiftIDs {
			body.WriteString("  - " + id + "\n")
		}
	}

	switch event.Type {
	case notify.EventAllocationCompleted:
		msg.Subject("Staff allocation completed")
	case notify.EventShiftsUnallocated:
		msg.Subject("Shifts left unallocated")
	default:
		msg.Subject("Staff allocation notification")
	}
	msg.SetBodyString(mail.TypeTextPlain, body.String())

	return msg, nil
}
