package model

// Listing is a rentable property as supplied by the listings store,
// together with its per-date availability calendar.
//
// Fields:
//  ID           – listings.id
//  Title        – display title used in synthesized messages.
//  Availability – one entry per calendar date, ordered by date.
type Listing struct {
    ID           uint64              `json:"id"`
    Title        string              `json:"title"`
    Availability []AvailabilityEntry `json:"availability"`
}

// DefaultGuests is assumed when an availability entry carries no guest count.
const DefaultGuests = 2

// AvailabilityEntry records the state of one listing on one calendar day.
// Dates are calendar days in YYYY-MM-DD form.  BookedBy and GuestName are
// empty when the day is not booked.  CheckIn and Guests are optional; the
// zero values mean "not provided".
type AvailabilityEntry struct {
    Date      string `json:"date"`                 // listing_availability.date
    BookedBy  string `json:"booked_by,omitempty"`  // listing_availability.booked_by (platform)
    GuestName string `json:"guest_name,omitempty"` // listing_availability.guest_name
    IsPast    bool   `json:"is_past"`              // listing_availability.is_past
    CheckIn   string `json:"check_in,omitempty"`   // listing_availability.check_in (nullable)
    Guests    int    `json:"guests,omitempty"`     // listing_availability.guests (nullable)
}

// IsBooking reports whether the entry belongs to a guest reservation.
// Both the occupant name and the booking platform must be present.
func (a AvailabilityEntry) IsBooking() bool {
    return a.BookedBy != "" && a.GuestName != ""
}
