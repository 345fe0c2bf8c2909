package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/guest-hub/internal/conversation"
	"github.com/iliyamo/guest-hub/internal/handler"
	"github.com/iliyamo/guest-hub/internal/model"
	"github.com/iliyamo/guest-hub/internal/request"
	"github.com/iliyamo/guest-hub/internal/service"
)

type staticListings []model.Listing

func (s staticListings) Listings(context.Context) ([]model.Listing, error) { return s, nil }

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func newTestServer(t *testing.T, refresh bool) *echo.Echo {
	t.Helper()
	e, _ := newTestServerWithHandler(t, refresh)
	return e
}

func newTestServerWithHandler(t *testing.T, refresh bool) (*echo.Echo, *handler.GuestHubHandler) {
	t.Helper()
	src := staticListings{{
		ID:    1,
		Title: "Cozy Downtown Apartment",
		Availability: []model.AvailabilityEntry{
			{Date: "2025-12-01", BookedBy: "booking", GuestName: "Sarah", IsPast: true},
			{Date: "2025-12-02", BookedBy: "booking", GuestName: "Sarah", IsPast: true},
			{Date: "2025-12-30", BookedBy: "vrbo", GuestName: "Emma", Guests: 3},
		},
	}}
	reqs, err := request.DefaultSeed()
	require.NoError(t, err)
	list := request.NewList()
	list.Seed(reqs)

	hub := service.NewHub(src, conversation.NewRegistry(), list, service.SimulatedGateway{})
	hub.Now = func() time.Time { return time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC) }
	if refresh {
		_, err := hub.Refresh(context.Background())
		require.NoError(t, err)
	}

	e := echo.New()
	h := handler.NewGuestHubHandler(hub)
	RegisterRoutes(e, h)
	RegisterGuestHub(e, h, nil)
	return e, h
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, true)
	code, body := do(t, e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["chats"])
	assert.Equal(t, float64(3), body["requests"])
	_, ok := body["database"]
	assert.False(t, ok, "no database attached")
}

func TestHealth_Database(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		status   string
		database string
	}{
		{"up", nil, http.StatusOK, "ok", "up"},
		{"down", errors.New("connection refused"), http.StatusServiceUnavailable, "degraded", "down"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, h := newTestServerWithHandler(t, true)
			h.DB = fakePinger{err: tc.err}
			code, body := do(t, e, http.MethodGet, "/healthz", "")
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.status, body["status"])
			assert.Equal(t, tc.database, body["database"])
		})
	}
}

func TestAutoReply(t *testing.T) {
	e := newTestServer(t, true)

	code, body := do(t, e, http.MethodGet, "/v1/settings/auto-reply", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["enabled"])

	code, body = do(t, e, http.MethodPut, "/v1/settings/auto-reply", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["enabled"])

	code, body = do(t, e, http.MethodGet, "/v1/chats", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["auto_reply"])
	for _, it := range body["items"].([]any) {
		assert.Equal(t, false, it.(map[string]any)["is_auto"])
	}

	code, _ = do(t, e, http.MethodPut, "/v1/settings/auto-reply", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, e, http.MethodPut, "/v1/settings/auto-reply", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, code)
	_, body = do(t, e, http.MethodGet, "/v1/chats/chat-Emma-vrbo", "")
	assert.Equal(t, true, body["item"].(map[string]any)["is_auto"])
}

func TestListChats(t *testing.T) {
	e := newTestServer(t, true)
	code, body := do(t, e, http.MethodGet, "/v1/chats", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, "chat-Sarah-booking", body["selected_id"])
	assert.Equal(t, true, body["auto_reply"])

	items := body["items"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, "Thank you for the wonderful stay!", first["preview"])
	assert.Equal(t, true, first["selected"])
	msgs := first["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Dec 03, 12:00 AM", msgs[0].(map[string]any)["display"])
}

func TestListChats_EmptyInbox(t *testing.T) {
	e := newTestServer(t, false)
	code, body := do(t, e, http.MethodGet, "/v1/chats", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["count"])
	assert.Nil(t, body["selected_id"])

	code, _ = do(t, e, http.MethodGet, "/v1/chats/selected", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRefreshChats(t *testing.T) {
	e := newTestServer(t, false)
	code, body := do(t, e, http.MethodPost, "/v1/chats/refresh", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["built"])
	assert.Equal(t, float64(2), body["count"])
}

func TestSelectChat(t *testing.T) {
	e := newTestServer(t, true)

	code, body := do(t, e, http.MethodPost, "/v1/chats/chat-Emma-vrbo/select", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "chat-Emma-vrbo", body["item"].(map[string]any)["id"])

	code, body = do(t, e, http.MethodGet, "/v1/chats/selected", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "chat-Emma-vrbo", body["item"].(map[string]any)["id"])

	code, _ = do(t, e, http.MethodPost, "/v1/chats/chat-Nobody-airbnb/select", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetChat(t *testing.T) {
	e := newTestServer(t, true)
	code, body := do(t, e, http.MethodGet, "/v1/chats/chat-Emma-vrbo", "")
	require.Equal(t, http.StatusOK, code)
	item := body["item"].(map[string]any)
	assert.Contains(t, item["preview"], "December 30")
	assert.Equal(t, false, item["selected"])

	code, _ = do(t, e, http.MethodGet, "/v1/chats/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSendMessage(t *testing.T) {
	e := newTestServer(t, true)
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"ok", "/v1/chats/chat-Sarah-booking/messages", `{"message":"Thanks!"}`, http.StatusOK},
		{"empty", "/v1/chats/chat-Sarah-booking/messages", `{"message":"  "}`, http.StatusBadRequest},
		{"unknown chat", "/v1/chats/missing/messages", `{"message":"hi"}`, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, body := do(t, e, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.want, code, body)
			if tc.want == http.StatusOK {
				assert.Equal(t, "Message sent successfully", body["message"])
			}
		})
	}
}

func TestSuggestions(t *testing.T) {
	e := newTestServer(t, true)
	code, body := do(t, e, http.MethodGet, "/v1/chats/chat-Sarah-booking/suggestions", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["count"])

	code, body = do(t, e, http.MethodPost, "/v1/chats/chat-Sarah-booking/suggestions/regenerate", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "New suggestions generated", body["message"])
	assert.Len(t, body["items"], 3)
}

func TestRequests(t *testing.T) {
	e := newTestServer(t, true)

	code, body := do(t, e, http.MethodGet, "/v1/requests", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), body["count"])
	first := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "req-1", first["id"])
	assert.Equal(t, []any{"Genius Level 3"}, first["badges"])
	assert.Equal(t, "Sarah Johnson", first["guest_name"])
	assert.Equal(t, "2025-12-20", first["check_in"])
	assert.Equal(t, float64(5), first["nights"])
	assert.Equal(t, map[string]any{"genius_level": float64(3)}, first["platform_specific"])

	code, body = do(t, e, http.MethodPost, "/v1/requests/req-1/approve", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Request approved successfully", body["message"])
	assert.Equal(t, "approved", body["item"].(map[string]any)["status"])

	code, body = do(t, e, http.MethodPost, "/v1/requests/req-1/decline", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "request already approved", body["error"])

	code, body = do(t, e, http.MethodPost, "/v1/requests/req-2/decline", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Request declined successfully", body["message"])

	code, _ = do(t, e, http.MethodPost, "/v1/requests/req-404/approve", "")
	assert.Equal(t, http.StatusNotFound, code)
}
