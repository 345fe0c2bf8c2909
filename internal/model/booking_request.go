package model

import (
    "encoding/json"
    "fmt"
    "time"
)

// Platform identifiers used across listings, chats and requests.
const (
    PlatformAirbnb  = "airbnb"
    PlatformBooking = "booking"
    PlatformVrbo    = "vrbo"
)

// RequestStatus is the lifecycle state of a booking request.
type RequestStatus string

const (
    StatusPending  RequestStatus = "pending"
    StatusApproved RequestStatus = "approved"
    StatusDeclined RequestStatus = "declined"
)

// DateLayout is the calendar-day layout used by requests and availability.
const DateLayout = "2006-01-02"

// PlatformDetails carries attributes that only exist on one booking
// platform.  Each implementation belongs to exactly one platform.
type PlatformDetails interface {
    Platform() string
    // Badges returns the labels shown next to the request.
    Badges() []string
}

// BookingComDetails holds Booking.com specific guest attributes.
type BookingComDetails struct {
    GeniusLevel int `json:"genius_level" yaml:"genius_level"`
}

func (BookingComDetails) Platform() string { return PlatformBooking }

func (d BookingComDetails) Badges() []string {
    return []string{fmt.Sprintf("Genius Level %d", d.GeniusLevel)}
}

// AirbnbDetails holds Airbnb specific guest attributes.
type AirbnbDetails struct {
    GuestRating float64 `json:"guest_rating" yaml:"guest_rating"`
}

func (AirbnbDetails) Platform() string { return PlatformAirbnb }

func (d AirbnbDetails) Badges() []string {
    return []string{fmt.Sprintf("⭐ %g Guest Rating", d.GuestRating)}
}

// VrboDetails holds Vrbo specific guest attributes.
type VrboDetails struct {
    Verified bool `json:"verified" yaml:"verified"`
}

func (VrboDetails) Platform() string { return PlatformVrbo }

func (d VrboDetails) Badges() []string {
    if !d.Verified {
        return nil
    }
    return []string{"✓ Verified Guest"}
}

// BookingRequest is a reservation request awaiting the host's decision.
// Status is the only field that changes after creation.
type BookingRequest struct {
    ID               string
    GuestName        string
    Platform         string
    Guests           int
    CheckIn          time.Time
    CheckOut         time.Time
    Status           RequestStatus
    PropertyTitle    string
    TotalPrice       float64
    PlatformSpecific PlatformDetails
}

// Nights returns the number of nights between check-in and check-out.
func (r BookingRequest) Nights() int {
    return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// bookingRequestJSON is the wire shape of a BookingRequest.
type bookingRequestJSON struct {
    ID               string          `json:"id"`
    GuestName        string          `json:"guest_name"`
    Platform         string          `json:"platform"`
    Guests           int             `json:"guests"`
    CheckIn          string          `json:"check_in"`
    CheckOut         string          `json:"check_out"`
    Nights           int             `json:"nights"`
    Status           RequestStatus   `json:"status"`
    PropertyTitle    string          `json:"property_title"`
    TotalPrice       float64         `json:"total_price"`
    PlatformSpecific PlatformDetails `json:"platform_specific,omitempty"`
    Badges           []string        `json:"badges"`
}

// MarshalJSON renders dates as calendar days and includes the platform badges.
func (r BookingRequest) MarshalJSON() ([]byte, error) {
    out := bookingRequestJSON{
        ID:               r.ID,
        GuestName:        r.GuestName,
        Platform:         r.Platform,
        Guests:           r.Guests,
        CheckIn:          r.CheckIn.Format(DateLayout),
        CheckOut:         r.CheckOut.Format(DateLayout),
        Nights:           r.Nights(),
        Status:           r.Status,
        PropertyTitle:    r.PropertyTitle,
        TotalPrice:       r.TotalPrice,
        PlatformSpecific: r.PlatformSpecific,
        Badges:           []string{},
    }
    if r.PlatformSpecific != nil {
        out.Badges = append(out.Badges, r.PlatformSpecific.Badges()...)
    }
    return json.Marshal(out)
}
