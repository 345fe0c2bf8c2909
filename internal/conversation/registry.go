package conversation

import (
	"errors"
	"sync"

	"github.com/iliyamo/guest-hub/internal/model"
)

// ErrChatNotFound is returned when a chat id is not in the registry.
var ErrChatNotFound = errors.New("chat not found")

// Registry holds the current inbox, the conversation the host has open and
// the host's auto-reply switch.  It is safe for concurrent use.  Chats are
// copied on the way in and out, so callers never share message slices with
// the registry.
type Registry struct {
	mu        sync.RWMutex
	chats     []model.Chat
	selected  *model.Chat
	autoReply bool
}

// NewRegistry returns an empty registry with auto-reply switched on.
func NewRegistry() *Registry { return &Registry{autoReply: true} }

func cloneChat(c model.Chat) model.Chat {
	if c.Messages != nil {
		c.Messages = append([]model.Message(nil), c.Messages...)
	}
	return c
}

func cloneChats(chats []model.Chat) []model.Chat {
	out := make([]model.Chat, len(chats))
	for i, c := range chats {
		out[i] = cloneChat(c)
	}
	return out
}

// ReplaceAll swaps the whole chat list.  An empty list leaves the registry
// as it was.  When nothing is selected yet, the first chat becomes the
// selection.
func (r *Registry) ReplaceAll(chats []model.Chat) {
	if len(chats) == 0 {
		return
	}
	cp := cloneChats(chats)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats = cp
	if r.selected == nil {
		first := cloneChat(cp[0])
		r.selected = &first
	}
}

// Select makes chat the current selection.  The chat does not have to be
// part of the current list.
func (r *Registry) Select(chat model.Chat) {
	chat = cloneChat(chat)
	r.mu.Lock()
	r.selected = &chat
	r.mu.Unlock()
}

// SelectByID selects the listed chat with the given id.
func (r *Registry) SelectByID(id string) (model.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chats {
		if c.ID == id {
			sel := cloneChat(c)
			r.selected = &sel
			return cloneChat(c), nil
		}
	}
	return model.Chat{}, ErrChatNotFound
}

// Chats returns a copy of the current chat list.
func (r *Registry) Chats() []model.Chat {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneChats(r.chats)
}

// Find returns the listed chat with the given id.
func (r *Registry) Find(id string) (model.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.chats {
		if c.ID == id {
			return cloneChat(c), nil
		}
	}
	return model.Chat{}, ErrChatNotFound
}

// Selected returns the selected chat, if any.
func (r *Registry) Selected() (model.Chat, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.selected == nil {
		return model.Chat{}, false
	}
	return cloneChat(*r.selected), true
}

// SetAutoReply switches automatic replies on or off for the whole inbox.
func (r *Registry) SetAutoReply(on bool) {
	r.mu.Lock()
	r.autoReply = on
	r.mu.Unlock()
}

// AutoReply reports whether automatic replies are on.
func (r *Registry) AutoReply() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.autoReply
}
