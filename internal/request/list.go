// Package request keeps the booking requests the host can approve or
// decline.  The list is seeded once with sample requests and afterwards
// only the status of individual requests changes.
package request

import (
	"fmt"
	"strings"
	"sync"

	"github.com/iliyamo/guest-hub/internal/model"
)

// Action is a host decision on a pending request.
type Action string

const (
	ActionApprove Action = "approve"
	ActionDecline Action = "decline"
)

// ParseAction validates a textual action.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionApprove, ActionDecline:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// target returns the status an action moves a pending request to.
func (a Action) target() (model.RequestStatus, bool) {
	switch a {
	case ActionApprove:
		return model.StatusApproved, true
	case ActionDecline:
		return model.StatusDeclined, true
	}
	return "", false
}

// PastTense returns the verb used in confirmations ("approved", "declined").
func (a Action) PastTense() string { return string(a) + "d" }

// List is an ordered, concurrency-safe collection of booking requests.
type List struct {
	mu       sync.RWMutex
	requests []model.BookingRequest
}

// NewList returns an empty list.
func NewList() *List { return &List{} }

// Seed replaces the list contents with reqs.
func (l *List) Seed(reqs []model.BookingRequest) {
	cp := make([]model.BookingRequest, len(reqs))
	copy(cp, reqs)
	l.mu.Lock()
	l.requests = cp
	l.mu.Unlock()
}

// All returns a copy of the requests in seed order.
func (l *List) All() []model.BookingRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.BookingRequest, len(l.requests))
	copy(out, l.requests)
	return out
}

// Get returns the request with the given id.
func (l *List) Get(id string) (model.BookingRequest, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return model.BookingRequest{}, ErrNotFound
}

// Transition applies action to the request with the given id.  Only
// pending requests can be decided; other requests are left untouched.
func (l *List) Transition(id string, action Action) (model.BookingRequest, error) {
	status, ok := action.target()
	if !ok {
		return model.BookingRequest{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.requests {
		if l.requests[i].ID != id {
			continue
		}
		if l.requests[i].Status != model.StatusPending {
			return l.requests[i], ErrNotPending
		}
		l.requests[i].Status = status
		return l.requests[i], nil
	}
	return model.BookingRequest{}, ErrNotFound
}
