package service

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/guest-hub/internal/queue"
)

// Publisher records acknowledged host actions.
type Publisher interface {
    PublishHostAction(ctx context.Context, event q.HostActionEvent) error
}

// AMQPPublisher publishes host actions to the durable host.actions queue.
// The connection is opened on first use and dropped after any failure so
// the next action dials again.
type AMQPPublisher struct {
    URL string

    mu   sync.Mutex
    conn *amqp.Connection
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string) *AMQPPublisher { return &AMQPPublisher{URL: url} }

// PublishHostAction publishes event as a persistent JSON message.
func (p *AMQPPublisher) PublishHostAction(ctx context.Context, event q.HostActionEvent) error {
    body, err := json.Marshal(event)
    if err != nil {
        return fmt.Errorf("marshal host action: %w", err)
    }

    p.mu.Lock()
    defer p.mu.Unlock()
    if err := p.publish(ctx, body); err != nil {
        log.Printf("rabbitmq: publish %s failed: %v", event.Path, err)
        p.reset()
        return err
    }
    return nil
}

func (p *AMQPPublisher) publish(ctx context.Context, body []byte) error {
    if p.conn == nil || p.conn.IsClosed() {
        conn, err := amqp.Dial(p.URL)
        if err != nil {
            return fmt.Errorf("dial: %w", err)
        }
        p.conn = conn
    }
    ch, err := p.conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(q.HostActionsQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    return ch.PublishWithContext(ctx, "", q.HostActionsQueue, false, false, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    })
}

func (p *AMQPPublisher) reset() {
    if p.conn != nil {
        _ = p.conn.Close()
        p.conn = nil
    }
}

// Close releases the broker connection, if any.
func (p *AMQPPublisher) Close() error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.reset()
    return nil
}
