package conversation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/iliyamo/guest-hub/internal/model"
)

// ErrInvalidCheckIn is returned when a stay's check-in is not a calendar date.
var ErrInvalidCheckIn = errors.New("invalid check-in date")

// ImminentWindowDays is the largest number of days before check-in for
// which a stay still counts as imminent.
const ImminentWindowDays = 7

// Category is the temporal class of a stay relative to today.
type Category int

const (
	CategoryPast Category = iota
	CategoryImminent
	CategoryDistant
)

func (c Category) String() string {
	switch c {
	case CategoryPast:
		return "past"
	case CategoryImminent:
		return "imminent"
	case CategoryDistant:
		return "distant"
	}
	return "unknown"
}

// Fixed preview shown for finished stays.
const PastPreview = "Thank you for the wonderful stay!"

// parseDay parses a calendar day (or a full RFC 3339 timestamp) and returns
// midnight of that day in loc.
func parseDay(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(model.DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidCheckIn, s)
	}
	return startOfDay(t.In(loc)), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysUntil counts calendar days from today to day, rounded up.  Dates are
// compared in UTC so daylight saving shifts do not skew the count.
func daysUntil(today, day time.Time) int {
	ty, tm, td := today.Date()
	dy, dm, dd := day.Date()
	from := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	to := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// Classify places a stay relative to today.  A stay flagged past or
// checking in before today is past; any other stay is imminent when its
// check-in is at most ImminentWindowDays away (a same-day check-in counts
// as zero days away) and distant otherwise.
func Classify(stay model.Stay, today time.Time) (Category, time.Time, error) {
	today = startOfDay(today)
	checkIn, err := parseDay(stay.CheckIn, today.Location())
	if err != nil {
		return 0, time.Time{}, err
	}
	if stay.IsPast || checkIn.Before(today) {
		return CategoryPast, checkIn, nil
	}
	if daysUntil(today, checkIn) <= ImminentWindowDays {
		return CategoryImminent, checkIn, nil
	}
	return CategoryDistant, checkIn, nil
}

// Synthesize turns a stay into the guest conversation shown for it.  The
// thread is derived only from the stay and its check-in date, so the same
// stay and day always produce the same chat.
func Synthesize(stay model.Stay, today time.Time) (model.Chat, error) {
	cat, checkIn, err := Classify(stay, today)
	if err != nil {
		return model.Chat{}, err
	}
	var (
		msgs    []model.Message
		preview string
	)
	switch cat {
	case CategoryPast:
		msgs, preview = pastThread(stay, checkIn)
	case CategoryImminent:
		msgs, preview = imminentThread(stay, checkIn)
	case CategoryDistant:
		msgs, preview = distantThread(stay, checkIn)
	}
	return model.Chat{
		ID:        model.ChatID(stay.GuestName, stay.Platform),
		GuestName: stay.GuestName,
		Platform:  stay.Platform,
		Preview:   preview,
		IsAuto:    true,
		Messages:  msgs,
	}, nil
}

func pastThread(stay model.Stay, checkIn time.Time) ([]model.Message, string) {
	nights := stay.Nights()
	return []model.Message{
		{
			Text:      fmt.Sprintf("Thank you so much for hosting us at %s! We had a wonderful time.", stay.PropertyTitle),
			Sender:    model.SenderGuest,
			Timestamp: checkIn.AddDate(0, 0, nights),
		},
		{
			Text:      "Thank you for being such wonderful guests! We're so glad you enjoyed your stay. You're always welcome back!",
			Sender:    model.SenderHost,
			Timestamp: checkIn.AddDate(0, 0, nights+1),
		},
	}, PastPreview
}

func imminentThread(stay model.Stay, checkIn time.Time) ([]model.Message, string) {
	msgs := []model.Message{
		{
			Text:      fmt.Sprintf("Hi! We're excited about our stay at %s. What time is check-in?", stay.PropertyTitle),
			Sender:    model.SenderGuest,
			Timestamp: checkIn.AddDate(0, 0, -3),
		},
		{
			Text:      "Welcome! Check-in is at 3:00 PM. I'll send you the access code and detailed instructions 24 hours before your arrival. Is there anything specific you'd like to know?",
			Sender:    model.SenderHost,
			Timestamp: checkIn.AddDate(0, 0, -3),
		},
		{
			Text:      "Perfect, thank you! Is parking available?",
			Sender:    model.SenderGuest,
			Timestamp: checkIn.AddDate(0, 0, -2),
		},
		{
			Text:      "Yes, free parking is included! There's a dedicated spot right in front of the property. You'll find the parking details in the check-in instructions.",
			Sender:    model.SenderHost,
			Timestamp: checkIn.AddDate(0, 0, -2),
		},
	}
	return msgs, msgs[0].Text
}

func distantThread(stay model.Stay, checkIn time.Time) ([]model.Message, string) {
	msgs := []model.Message{
		{
			Text: fmt.Sprintf("Hi! Just wanted to confirm our reservation for %s at %s. We're %d guests. Looking forward to it!",
				checkIn.Format("January 02"), stay.PropertyTitle, stay.Guests),
			Sender:    model.SenderGuest,
			Timestamp: checkIn.AddDate(0, 0, -14),
		},
		{
			Text:      "Yes, your reservation is confirmed! We're looking forward to hosting you. I'll send check-in instructions about 3 days before your arrival. Feel free to reach out if you have any questions!",
			Sender:    model.SenderHost,
			Timestamp: checkIn.AddDate(0, 0, -14),
		},
	}
	return msgs, msgs[0].Text
}
