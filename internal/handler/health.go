package handler // declare the package name; contains HTTP handlers

import (
    "context"
    "net/http" // net/http provides status codes and response helpers
    "time"

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is a health‑check endpoint used by load balancers and monitoring
// systems.  Besides the status it reports how many chats and booking
// requests the hub currently holds, which makes an empty inbox after a
// refresh easy to spot.  When a database is attached it is pinged and an
// unreachable listings store turns the answer into 503.
func (h *GuestHubHandler) Health(c echo.Context) error {
    status, code := "ok", http.StatusOK
    resp := echo.Map{
        "chats":    len(h.Hub.Registry.Chats()),
        "requests": len(h.Hub.Requests.All()),
    }
    if h.DB != nil {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()
        if err := h.DB.PingContext(ctx); err != nil {
            c.Logger().Warnf("health: database ping failed: %v", err)
            status, code = "degraded", http.StatusServiceUnavailable
            resp["database"] = "down"
        } else {
            resp["database"] = "up"
        }
    }
    resp["status"] = status
    return c.JSON(code, resp)
}
