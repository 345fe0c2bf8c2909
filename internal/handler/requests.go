package handler

import (
    "errors"
    "net/http"

    "github.com/iliyamo/guest-hub/internal/request"
    "github.com/labstack/echo/v4"
)

// ListRequests handles GET /v1/requests.  Requests are returned in seed
// order; each item carries its platform badges.
func (h *GuestHubHandler) ListRequests(c echo.Context) error {
    items := h.Hub.Requests.All()
    return c.JSON(http.StatusOK, echo.Map{
        "items": items,
        "count": len(items),
    })
}

// ApproveRequest handles POST /v1/requests/:id/approve.
func (h *GuestHubHandler) ApproveRequest(c echo.Context) error {
    return h.decide(c, request.ActionApprove)
}

// DeclineRequest handles POST /v1/requests/:id/decline.
func (h *GuestHubHandler) DeclineRequest(c echo.Context) error {
    return h.decide(c, request.ActionDecline)
}

// decide relays the action to the gateway and applies it.  It returns 404
// for unknown requests and 409 when the request was already decided.
func (h *GuestHubHandler) decide(c echo.Context, action request.Action) error {
    updated, err := h.Hub.DecideRequest(c.Request().Context(), c.Param("id"), action)
    if err != nil {
        switch {
        case errors.Is(err, request.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
        case errors.Is(err, request.ErrNotPending):
            return c.JSON(http.StatusConflict, echo.Map{"error": "request already " + string(updated.Status)})
        case errors.Is(err, request.ErrInvalidAction):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid action"})
        case isCanceled(err):
            return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "request cancelled"})
        }
        c.Logger().Errorf("request %s: %v", action, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update request"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "message": "Request " + action.PastTense() + " successfully",
        "item":    updated,
    })
}
