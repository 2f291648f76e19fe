// Package service provides the RabbitMQ publisher for film change events.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package service

import (
    "context"
    "encoding/json"
    "log"
    "net"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/film-catalog/internal/queue"
)

// QueuePublisher publishes FilmEvents to the films.events queue.  Each call
// dials its own connection; writes are rare enough that holding a channel
// open is not worth the reconnect handling.
type QueuePublisher struct {
    URL string
}

func NewQueuePublisher(url string) *QueuePublisher {
    return &QueuePublisher{URL: url}
}

// handshakeTimeout bounds connect and handshake when ctx has no deadline.
const handshakeTimeout = 30 * time.Second

// dialContext connects under ctx and keeps its deadline on the socket until
// the AMQP handshake finishes; the library clears it once the connection
// is open.
func dialContext(ctx context.Context) func(network, addr string) (net.Conn, error) {
    return func(network, addr string) (net.Conn, error) {
        var d net.Dialer
        conn, err := d.DialContext(ctx, network, addr)
        if err != nil {
            return nil, err
        }
        deadline, ok := ctx.Deadline()
        if !ok {
            deadline = time.Now().Add(handshakeTimeout)
        }
        if err := conn.SetDeadline(deadline); err != nil {
            _ = conn.Close()
            return nil, err
        }
        return conn, nil
    }
}

// Publish sends event as a persistent JSON message.  It never panics; any
// error is logged and returned.
func (p *QueuePublisher) Publish(ctx context.Context, event q.FilmEvent) error {
    conn, err := amqp.DialConfig(p.URL, amqp.Config{
        Heartbeat: 10 * time.Second,
        Locale:    "en_US",
        Dial:      dialContext(ctx),
    })
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Idempotent; durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        q.FilmEventsQueue, // name
        true,              // durable
        false,             // autoDelete
        false,             // exclusive
        false,             // noWait
        nil,               // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    event.ID,
        Type:         event.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",                // default exchange
        q.FilmEventsQueue, // routing key = queue name
        false,             // mandatory
        false,             // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
