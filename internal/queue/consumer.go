package queue

import (
    "context"
    "errors"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/config"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/logger"
)

// Handler processes one message body.  Returning an error rejects the
// message without requeueing it, unless the error is wrapped with
// Retryable: then the message goes back on the queue after a delay.
type Handler func(ctx context.Context, body []byte) error

type retryable struct{ err error }

func (r retryable) Error() string { return r.err.Error() }
func (r retryable) Unwrap() error { return r.err }

// Retryable marks err as transient.  A nil err stays nil.
func Retryable(err error) error {
    if err == nil {
        return nil
    }
    return retryable{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked
// with Retryable.
func IsRetryable(err error) bool {
    var r retryable
    return errors.As(err, &r)
}

// requeue decides the fate of a failed delivery.  deliveries is the
// broker's x-delivery-count (quorum queues), zero when unknown; a
// message that already failed maxRedeliveries times is dropped.
func requeue(err error, deliveries int64, maxRedeliveries int) bool {
    if !IsRetryable(err) {
        return false
    }
    return maxRedeliveries <= 0 || deliveries < int64(maxRedeliveries)
}

func deliveryCount(h amqp.Table) int64 {
    switch v := h["x-delivery-count"].(type) {
    case int64:
        return v
    case int32:
        return int64(v)
    case int:
        return int64(v)
    }
    return 0
}

// Consume connects to RabbitMQ, declares queue (durable), and hands every
// delivery to h.  It runs a reconnect loop with exponential backoff and
// only returns once ctx is cancelled.  Failed messages are logged and
// rejected so one poison message cannot stall the queue; retryable
// failures are requeued after cfg.RetryDelay.
func Consume(ctx context.Context, cfg config.BrokerConfig, queue string, h Handler) error {
    backoff := time.Second
    maxDelay := cfg.ReconnectMaxDelay
    if maxDelay <= 0 {
        maxDelay = 30 * time.Second
    }
    for {
        conn, err := amqp.Dial(cfg.URL)
        if err != nil {
            logger.ErrorLogger.Warnf("consumer %s: failed to dial broker: %v; retrying in %s", queue, err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < maxDelay {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = consumeLoop(ctx, conn, cfg, queue, h)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        logger.ErrorLogger.Warnf("consumer %s: consume loop ended: %v; reconnecting", queue, err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, cfg config.BrokerConfig, queue string, h Handler) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if cfg.Prefetch > 0 {
        if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
            logger.ErrorLogger.Warnf("consumer %s: set QoS failed: %v", queue, err)
        }
    }

    if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := h(ctx, d.Body); err != nil {
                again := requeue(err, deliveryCount(d.Headers), cfg.MaxRedeliveries)
                logger.ErrorLogger.Errorf("consumer %s: handle message failed (requeue=%t): %v", queue, again, err)
                if again && !sleep(ctx, cfg.RetryDelay) {
                    _ = d.Nack(false, true)
                    return ctx.Err()
                }
                _ = d.Nack(false, again)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
