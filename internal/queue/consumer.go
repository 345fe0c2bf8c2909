// Package queue contains the background consumers of the guest hub: the
// listings.changed consumer that triggers a chat refresh and the
// host.actions consumer that writes the action audit log.
package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc processes one delivery body.  A non-nil error rejects the
// message without requeueing it.
type HandlerFunc func(ctx context.Context, body []byte) error

// Consume connects to the broker at url, declares queueName (durable) and
// hands every delivery to handle.  It reconnects with exponential backoff
// and returns only when ctx is cancelled.
func Consume(ctx context.Context, url, queueName string, handle HandlerFunc) error {
    backoff := time.Second
    for {
        if ctx.Err() != nil {
            return nil
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("%s-consumer: failed to dial broker: %v; retrying in %s", queueName, err, backoff)
            if !sleep(ctx, backoff) {
                return nil
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = consumeLoop(ctx, conn, queueName, handle)
        _ = conn.Close()
        if ctx.Err() != nil {
            return nil
        }
        log.Printf("%s-consumer: consume loop ended: %v; reconnecting", queueName, err)
        if !sleep(ctx, 2*time.Second) {
            return nil
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

func consumeLoop(ctx context.Context, conn *amqp.Connection, queueName string, handle HandlerFunc) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(10, 0, false); err != nil {
        log.Printf("%s-consumer: set QoS failed: %v", queueName, err)
    }

    if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
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
            if err := handle(ctx, d.Body); err != nil {
                log.Printf("%s-consumer: handle message failed: %v", queueName, err)
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// ListingsChanged adapts fn into a HandlerFunc for the listings.changed queue.
func ListingsChanged(fn func(context.Context, ListingsChangedEvent) error) HandlerFunc {
    return func(ctx context.Context, body []byte) error {
        var ev ListingsChangedEvent
        if err := json.Unmarshal(body, &ev); err != nil {
            return fmt.Errorf("unmarshal: %w", err)
        }
        return fn(ctx, ev)
    }
}

// ActionLog returns a HandlerFunc that appends each HostActionEvent to
// dir/host_actions.log as a single human-friendly line.
func ActionLog(dir string) HandlerFunc {
    return func(_ context.Context, body []byte) error {
        var ev HostActionEvent
        if err := json.Unmarshal(body, &ev); err != nil {
            return fmt.Errorf("unmarshal: %w", err)
        }
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("mkdir logs: %w", err)
        }
        f, err := os.OpenFile(filepath.Join(dir, "host_actions.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
        if err != nil {
            return fmt.Errorf("open log file: %w", err)
        }
        defer f.Close()

        if _, err := f.WriteString(FormatAction(ev)); err != nil {
            return fmt.Errorf("write log: %w", err)
        }
        return nil
    }
}

// FormatAction renders an action event as one log line.
func FormatAction(ev HostActionEvent) string {
    line := fmt.Sprintf("[%s] Host action | path=%s", ev.OccurredAt, ev.Path)
    if ev.ChatID != "" {
        line += fmt.Sprintf(" | chat_id=%s", ev.ChatID)
    }
    if ev.RequestID != "" {
        line += fmt.Sprintf(" | request_id=%s | action=%s", ev.RequestID, ev.Action)
    }
    if ev.Message != "" {
        line += fmt.Sprintf(" | message=%q", ev.Message)
    }
    return line + "\n"
}
