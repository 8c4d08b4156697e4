package mailer

import (
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// RetryHeader counts how many times a job went through the retry queue.
	RetryHeader       = "x-retry-count"
	DefaultMaxRetries = 5
	DefaultRetryDelay = 30 * time.Second
)

// RetryQueue parks failed jobs for the delay, then dead-letters them back to queue.
func RetryQueue(queue string) string { return queue + ".retry" }

// DeadQueue holds jobs that were malformed or ran out of retries.
func DeadQueue(queue string) string { return queue + ".dead" }

// RetryQueueArgs declares RetryQueue(queue) so that messages expire after
// delay and return to queue through the default exchange.
func RetryQueueArgs(queue string, delay time.Duration) amqp.Table {
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	return amqp.Table{
		"x-message-ttl":             int32(delay.Milliseconds()),
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": queue,
	}
}

// RetryCount reads the counter stamped by NextRetry. Missing or malformed
// values count as zero.
func RetryCount(h amqp.Table) int {
	switch v := h[RetryHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// NextRetry returns the headers for the next attempt, or false once max
// retries are used up. The input table is not modified.
func NextRetry(h amqp.Table, max int) (amqp.Table, bool) {
	if max <= 0 {
		max = DefaultMaxRetries
	}
	n := RetryCount(h)
	if n >= max {
		return nil, false
	}
	out := make(amqp.Table, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	out[RetryHeader] = int32(n + 1)
	return out, true
}
