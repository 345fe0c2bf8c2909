// Package service wires the guest hub together: it reruns the stay
// pipeline when listings change and performs the simulated host actions.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/guest-hub/internal/conversation"
	"github.com/iliyamo/guest-hub/internal/model"
	q "github.com/iliyamo/guest-hub/internal/queue"
	"github.com/iliyamo/guest-hub/internal/request"
)

// ErrEmptyMessage is returned when the host sends a blank message.
var ErrEmptyMessage = errors.New("message is empty")

// ListingSource supplies complete listings snapshots.
type ListingSource interface {
	Listings(ctx context.Context) ([]model.Listing, error)
}

// Invalidator is implemented by listing sources that cache snapshots.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Hub owns the conversation registry and the booking request list for one
// host session.
type Hub struct {
	Listings  ListingSource
	Builder   *conversation.Builder
	Registry  *conversation.Registry
	Requests  *request.List
	Gateway   Gateway
	Publisher Publisher // optional
	Now       func() time.Time

	refreshMu sync.Mutex
}

// NewHub constructs a Hub.  Listings, registry, requests and gateway are
// required.
func NewHub(listings ListingSource, registry *conversation.Registry, requests *request.List, gw Gateway) *Hub {
	if listings == nil || registry == nil || requests == nil || gw == nil {
		panic("nil dependency passed to NewHub")
	}
	return &Hub{
		Listings: listings,
		Builder:  conversation.NewBuilder(nil),
		Registry: registry,
		Requests: requests,
		Gateway:  gw,
		Now:      time.Now,
	}
}

// Refresh reloads the listings snapshot, rebuilds every chat and replaces
// the registry contents.  It returns the number of chats built.  Runs are
// serialized so concurrent triggers never interleave their results.
func (h *Hub) Refresh(ctx context.Context) (int, error) {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	listings, err := h.Listings.Listings(ctx)
	if err != nil {
		return 0, fmt.Errorf("load listings: %w", err)
	}
	chats := h.Builder.Build(listings, h.Now())
	h.Registry.ReplaceAll(chats)
	log.Printf("hub: refreshed %d chats from %d listings", len(chats), len(listings))
	return len(chats), nil
}

// OnListingsChanged drops any cached snapshot and refreshes the inbox.
func (h *Hub) OnListingsChanged(ctx context.Context, ev q.ListingsChangedEvent) error {
	log.Printf("hub: listings changed (source=%q, listings=%v)", ev.Source, ev.ListingIDs)
	if inv, ok := h.Listings.(Invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			log.Printf("hub: invalidate listings cache: %v", err)
		}
	}
	_, err := h.Refresh(ctx)
	return err
}

// SendMessage sends a host reply in the given chat through the gateway.
// The chat thread itself is not modified.
func (h *Hub) SendMessage(ctx context.Context, chatID, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if _, err := h.Registry.Find(chatID); err != nil {
		return err
	}
	payload := map[string]string{"chatId": chatID, "message": text}
	if err := h.Gateway.Send(ctx, PathSendMessage, payload); err != nil {
		return err
	}
	h.audit(ctx, q.HostActionEvent{Path: PathSendMessage, ChatID: chatID, Message: text})
	return nil
}

// RegenerateSuggestions asks the gateway for fresh reply suggestions and
// returns the suggestion set for the chat.
func (h *Hub) RegenerateSuggestions(ctx context.Context, chatID string) ([]string, error) {
	if _, err := h.Registry.Find(chatID); err != nil {
		return nil, err
	}
	if err := h.Gateway.Send(ctx, PathRegenerate, map[string]string{"chatId": chatID}); err != nil {
		return nil, err
	}
	h.audit(ctx, q.HostActionEvent{Path: PathRegenerate, ChatID: chatID})
	return conversation.Suggestions(), nil
}

// DecideRequest approves or declines a pending booking request.  The
// gateway is called first; the status changes only after it acknowledges.
func (h *Hub) DecideRequest(ctx context.Context, id string, action request.Action) (model.BookingRequest, error) {
	if _, err := request.ParseAction(string(action)); err != nil {
		return model.BookingRequest{}, err
	}
	cur, err := h.Requests.Get(id)
	if err != nil {
		return model.BookingRequest{}, err
	}
	if cur.Status != model.StatusPending {
		return cur, request.ErrNotPending
	}
	payload := map[string]string{"requestId": id, "action": string(action)}
	if err := h.Gateway.Send(ctx, PathUpdateReq, payload); err != nil {
		return model.BookingRequest{}, err
	}
	updated, err := h.Requests.Transition(id, action)
	if err != nil {
		return updated, err
	}
	h.audit(ctx, q.HostActionEvent{Path: PathUpdateReq, RequestID: id, Action: string(action)})
	return updated, nil
}

// audit publishes an acknowledged action.  Failures are logged only.
func (h *Hub) audit(ctx context.Context, ev q.HostActionEvent) {
	if h.Publisher == nil {
		return
	}
	ev.OccurredAt = h.Now().UTC().Format(time.RFC3339)
	if err := h.Publisher.PublishHostAction(ctx, ev); err != nil {
		log.Printf("hub: audit %s failed: %v", ev.Path, err)
	}
}
