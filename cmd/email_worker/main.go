package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/superstar-bot/config"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
	"github.com/oksasatya/superstar-bot/pkg/mailer"
)

const requeuePause = 5 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch keeps dispatch fair across worker replicas
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	queue := cfg.RabbitMQEmailQueue
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	if _, err := ch.QueueDeclare(mailer.RetryQueue(queue), true, false, false, false, mailer.RetryQueueArgs(queue, cfg.EmailRetryDelay)); err != nil {
		logger.Fatalf("retry queue declare: %v", err)
	}
	if _, err := ch.QueueDeclare(mailer.DeadQueue(queue), true, false, false, false, nil); err != nil {
		logger.Fatalf("dead queue declare: %v", err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			err := mailer.Deliver(ctx, mg, msg.Body)
			entry := logger.WithFields(logrus.Fields{"delivery_tag": msg.DeliveryTag, "redelivered": msg.Redelivered})
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, mailer.ErrBadJob):
				entry.WithError(err).Warn("dead-lettering malformed email job")
				settle(ctx, ch, msg, mailer.DeadQueue(queue), msg.Headers, entry)
			default:
				if next, ok := mailer.NextRetry(msg.Headers, cfg.EmailMaxRetries); ok {
					entry.WithError(err).WithField("attempt", mailer.RetryCount(next)).Warn("email send failed, retrying later")
					settle(ctx, ch, msg, mailer.RetryQueue(queue), next, entry)
				} else {
					entry.WithError(err).Error("email send failed, retries exhausted")
					settle(ctx, ch, msg, mailer.DeadQueue(queue), msg.Headers, entry)
				}
			}
		}
	}()

	logger.WithField("queue", queue).Info("email worker listening")
	<-ctx.Done()
	logger.Info("shutting down")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

// settle moves msg to target with the given headers and acks the original.
// If the republish fails the original is requeued after a pause so a broken
// broker link does not spin.
func settle(ctx context.Context, ch *amqp.Channel, msg amqp.Delivery, target string, headers amqp.Table, entry *logrus.Entry) {
	err := ch.PublishWithContext(ctx, "", target, false, false, amqp.Publishing{
		ContentType:  msg.ContentType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Headers:      headers,
		Body:         msg.Body,
	})
	if err != nil {
		entry.WithError(err).WithField("target", target).Error("republish failed, requeueing")
		select {
		case <-time.After(requeuePause):
		case <-ctx.Done():
		}
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}
