// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used by the guest hub.  Both queues are durable.
const (
    ListingsChangedQueue = "listings.changed"
    HostActionsQueue     = "host.actions"
)

// ListingsChangedEvent is published by the channel manager whenever a
// listing or its availability calendar changes.  The hub treats it as a
// signal only: it always reloads the complete snapshot.
type ListingsChangedEvent struct {
    ListingIDs []uint64 `json:"listing_ids,omitempty"`
    Source     string   `json:"source,omitempty"`
    ChangedAt  string   `json:"changed_at"`
}

// HostActionEvent records a simulated host action after it was acknowledged.
// Path is the gateway path the action was sent to (e.g. /messages/send).
type HostActionEvent struct {
    Path       string `json:"path"`
    ChatID     string `json:"chat_id,omitempty"`
    RequestID  string `json:"request_id,omitempty"`
    Action     string `json:"action,omitempty"`
    Message    string `json:"message,omitempty"`
    OccurredAt string `json:"occurred_at"`
}
