package handler

// This file defines the HTTP handlers of the host inbox.  Hosts list the
// conversations synthesized from their bookings, open one, send replies
// and ask for reply suggestions.  Replies and regenerations go through the
// simulated gateway; they are acknowledged but never change a thread.

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/iliyamo/guest-hub/internal/conversation"
    "github.com/iliyamo/guest-hub/internal/model"
    "github.com/iliyamo/guest-hub/internal/service"
    "github.com/labstack/echo/v4"
)

// Pinger is implemented by *sql.DB.
type Pinger interface {
    PingContext(ctx context.Context) error
}

// GuestHubHandler exposes the hub to the dashboard.  DB is optional; when
// set, Health also checks the listings store.
type GuestHubHandler struct {
    Hub *service.Hub
    DB  Pinger
}

// NewGuestHubHandler constructs a GuestHubHandler and panics on a nil hub.
func NewGuestHubHandler(hub *service.Hub) *GuestHubHandler {
    if hub == nil {
        panic("nil hub passed to NewGuestHubHandler")
    }
    return &GuestHubHandler{Hub: hub}
}

// messageView is a chat message as rendered by the dashboard.
type messageView struct {
    Text      string `json:"text"`
    Sender    string `json:"sender"`
    Timestamp string `json:"timestamp"` // RFC 3339
    Display   string `json:"display"`   // e.g. "Dec 05, 12:00 AM"
}

// chatView is a conversation as rendered by the dashboard.
type chatView struct {
    ID        string        `json:"id"`
    GuestName string        `json:"guest_name"`
    Platform  string        `json:"platform"`
    Preview   string        `json:"preview"`
    IsAuto    bool          `json:"is_auto"`
    Selected  bool          `json:"selected"`
    Messages  []messageView `json:"messages"`
}

// toChatView renders c.  A chat counts as auto only while the host keeps
// auto-reply switched on.
func toChatView(c model.Chat, selectedID string, autoReply bool) chatView {
    v := chatView{
        ID:        c.ID,
        GuestName: c.GuestName,
        Platform:  c.Platform,
        Preview:   c.Preview,
        IsAuto:    c.IsAuto && autoReply,
        Selected:  c.ID == selectedID,
        Messages:  make([]messageView, 0, len(c.Messages)),
    }
    for _, m := range c.Messages {
        v.Messages = append(v.Messages, messageView{
            Text:      m.Text,
            Sender:    string(m.Sender),
            Timestamp: m.Timestamp.Format(time.RFC3339),
            Display:   m.Display(),
        })
    }
    return v
}

func (h *GuestHubHandler) view(c model.Chat, selectedID string) chatView {
    return toChatView(c, selectedID, h.Hub.Registry.AutoReply())
}

func (h *GuestHubHandler) selectedID() string {
    if sel, ok := h.Hub.Registry.Selected(); ok {
        return sel.ID
    }
    return ""
}

// ListChats handles GET /v1/chats.  It returns every conversation in inbox
// order together with the id of the selected one (null when none).
func (h *GuestHubHandler) ListChats(c echo.Context) error {
    selected := h.selectedID()
    chats := h.Hub.Registry.Chats()
    items := make([]chatView, 0, len(chats))
    for _, ch := range chats {
        items = append(items, h.view(ch, selected))
    }
    var selectedRef *string
    if selected != "" {
        selectedRef = &selected
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":       items,
        "count":       len(items),
        "selected_id": selectedRef,
        "auto_reply":  h.Hub.Registry.AutoReply(),
    })
}

// GetChat handles GET /v1/chats/:id.
func (h *GuestHubHandler) GetChat(c echo.Context) error {
    chat, err := h.Hub.Registry.Find(c.Param("id"))
    if err != nil {
        return chatError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"item": h.view(chat, h.selectedID())})
}

// GetSelectedChat handles GET /v1/chats/selected.  It returns 404 while no
// conversation is selected.
func (h *GuestHubHandler) GetSelectedChat(c echo.Context) error {
    chat, ok := h.Hub.Registry.Selected()
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "no chat selected"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": h.view(chat, chat.ID)})
}

// SelectChat handles POST /v1/chats/:id/select.
func (h *GuestHubHandler) SelectChat(c echo.Context) error {
    chat, err := h.Hub.Registry.SelectByID(c.Param("id"))
    if err != nil {
        return chatError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"item": h.view(chat, chat.ID)})
}

// RefreshChats handles POST /v1/chats/refresh.  It rebuilds the inbox from
// the current listings snapshot.
func (h *GuestHubHandler) RefreshChats(c echo.Context) error {
    n, err := h.Hub.Refresh(c.Request().Context())
    if err != nil {
        c.Logger().Errorf("refresh chats: %v", err)
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load listings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"built": n, "count": len(h.Hub.Registry.Chats())})
}

// SendMessage handles POST /v1/chats/:id/messages with body
// {"message": "..."}.
func (h *GuestHubHandler) SendMessage(c echo.Context) error {
    var body struct {
        Message string `json:"message"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if err := h.Hub.SendMessage(c.Request().Context(), c.Param("id"), body.Message); err != nil {
        if errors.Is(err, service.ErrEmptyMessage) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "message is required"})
        }
        return chatError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Message sent successfully"})
}

// GetAutoReply handles GET /v1/settings/auto-reply.
func (h *GuestHubHandler) GetAutoReply(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"enabled": h.Hub.Registry.AutoReply()})
}

// SetAutoReply handles PUT /v1/settings/auto-reply with body
// {"enabled": true|false}.
func (h *GuestHubHandler) SetAutoReply(c echo.Context) error {
    var body struct {
        Enabled *bool `json:"enabled"`
    }
    if err := c.Bind(&body); err != nil || body.Enabled == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "enabled is required"})
    }
    h.Hub.Registry.SetAutoReply(*body.Enabled)
    return c.JSON(http.StatusOK, echo.Map{"enabled": *body.Enabled})
}

// ListSuggestions handles GET /v1/chats/:id/suggestions.
func (h *GuestHubHandler) ListSuggestions(c echo.Context) error {
    if _, err := h.Hub.Registry.Find(c.Param("id")); err != nil {
        return chatError(c, err)
    }
    items := conversation.Suggestions()
    return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// RegenerateSuggestions handles POST /v1/chats/:id/suggestions/regenerate.
func (h *GuestHubHandler) RegenerateSuggestions(c echo.Context) error {
    items, err := h.Hub.RegenerateSuggestions(c.Request().Context(), c.Param("id"))
    if err != nil {
        return chatError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message": "New suggestions generated",
        "items":   items,
        "count":   len(items),
    })
}

// chatError maps hub errors on chat routes to HTTP responses.
func chatError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, conversation.ErrChatNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "chat not found"})
    case isCanceled(err):
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "request cancelled"})
    }
    c.Logger().Errorf("chat action: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "action failed"})
}

func isCanceled(err error) bool {
    return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
