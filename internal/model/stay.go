package model

// Stay is a guest reservation rebuilt from the availability entries that
// share the same guest name and booking platform on one listing.  A stay
// exists only while a listing is being aggregated; it is never stored.
//
// CheckIn, Guests and IsPast are taken from the first entry observed for
// the stay.  Dates holds every observed date in input order and is never
// empty.
type Stay struct {
    GuestName     string
    Platform      string
    PropertyTitle string
    CheckIn       string
    Guests        int
    IsPast        bool
    Dates         []string
}

// StayKey builds the aggregation key for a guest on a platform.
func StayKey(guestName, platform string) string {
    return guestName + "-" + platform
}

// Key returns the aggregation key of the stay.
func (s Stay) Key() string { return StayKey(s.GuestName, s.Platform) }

// Nights is the number of booked dates accumulated for the stay.
func (s Stay) Nights() int { return len(s.Dates) }
