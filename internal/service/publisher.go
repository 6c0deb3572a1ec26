package service

import (
    "context"
    "encoding/json"
    "time"

    "github.com/google/uuid"
    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/IlTetta/CoWorkSpace-sub001/internal/config"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/logger"
    "github.com/IlTetta/CoWorkSpace-sub001/internal/queue"
)

// EventPublisher delivers reservation events to downstream consumers.
type EventPublisher interface {
    PublishReservation(ctx context.Context, ev queue.ReservationEvent) error
}

// AMQPPublisher publishes reservation events to RabbitMQ.  Each publish
// opens its own connection; errors are logged and returned so callers
// can choose to ignore them without interrupting the request flow.
type AMQPPublisher struct {
    cfg config.BrokerConfig
}

func NewAMQPPublisher(cfg config.BrokerConfig) *AMQPPublisher {
    return &AMQPPublisher{cfg: cfg}
}

// PublishReservation assigns an event id when missing and publishes the
// event as a persistent JSON message on the reservation events queue.
func (p *AMQPPublisher) PublishReservation(ctx context.Context, ev queue.ReservationEvent) error {
    if ev.EventID == "" {
        ev.EventID = uuid.NewString()
    }
    if p.cfg.PublishTimeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, p.cfg.PublishTimeout)
        defer cancel()
    }

    conn, err := amqp.Dial(p.cfg.URL)
    if err != nil {
        logger.ErrorLogger.Errorf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        logger.ErrorLogger.Errorf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(p.cfg.ReservationQueue, true, false, false, false, nil); err != nil {
        logger.ErrorLogger.Errorf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.EventID,
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.cfg.ReservationQueue, false, false, pub); err != nil {
        logger.ErrorLogger.Errorf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}

// NopPublisher drops every event.  It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishReservation(context.Context, queue.ReservationEvent) error { return nil }
