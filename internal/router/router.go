package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/guest-hub/internal/handler" // handlers that implement the inbox and request endpoints
)

// RegisterRoutes registers the health check on the provided Echo instance.
// The endpoint can be used by load balancers or monitoring systems to verify
// that the service is up and how many chats it holds.
func RegisterRoutes(e *echo.Echo, h *handler.GuestHubHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterGuestHub registers the inbox and booking request endpoints under
// /v1.  Read endpoints are unrestricted.  Endpoints that call the action
// gateway are wrapped in limit so a misbehaving dashboard cannot flood the
// channel manager.
func RegisterGuestHub(e *echo.Echo, h *handler.GuestHubHandler, limit echo.MiddlewareFunc) {
	if limit == nil {
		limit = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	g := e.Group("/v1")

	// ---- Conversations ----
	g.GET("/chats", h.ListChats)
	g.GET("/chats/selected", h.GetSelectedChat)
	g.GET("/chats/:id", h.GetChat)
	g.POST("/chats/:id/select", h.SelectChat)
	g.POST("/chats/refresh", h.RefreshChats)
	g.GET("/chats/:id/suggestions", h.ListSuggestions)

	// ---- Settings ----
	g.GET("/settings/auto-reply", h.GetAutoReply)
	g.PUT("/settings/auto-reply", h.SetAutoReply)

	// ---- Simulated actions ----
	a := g.Group("", limit)
	a.POST("/chats/:id/messages", h.SendMessage)
	a.POST("/chats/:id/suggestions/regenerate", h.RegenerateSuggestions)

	// ---- Booking requests ----
	g.GET("/requests", h.ListRequests)
	a.POST("/requests/:id/approve", h.ApproveRequest)
	a.POST("/requests/:id/decline", h.DeclineRequest)
}
