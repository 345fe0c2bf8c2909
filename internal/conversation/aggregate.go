// Package conversation derives the host inbox from listing availability.
// Availability entries are grouped into stays, each stay is classified
// against the current day and turned into a synthetic guest thread, and
// the resulting chats are kept in a Registry for the presentation layer.
package conversation

import "github.com/iliyamo/guest-hub/internal/model"

// StayIndex maps aggregation keys to stays and remembers the order in
// which keys were first seen.
type StayIndex struct {
	order []string
	byKey map[string]*model.Stay
}

func newStayIndex() *StayIndex {
	return &StayIndex{byKey: make(map[string]*model.Stay)}
}

// Get returns the stay stored under key.
func (s *StayIndex) Get(key string) (*model.Stay, bool) {
	st, ok := s.byKey[key]
	return st, ok
}

// Len returns the number of stays.
func (s *StayIndex) Len() int { return len(s.order) }

// Stays returns the stays in first-seen order.
func (s *StayIndex) Stays() []*model.Stay {
	out := make([]*model.Stay, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

// AggregateStays groups one listing's availability entries into stays keyed
// by guest name and platform.  Entries that are not bookings are ignored.
// The first entry seen for a key fixes the stay's check-in, guest count and
// past flag; later entries only contribute their date.
func AggregateStays(propertyTitle string, entries []model.AvailabilityEntry) *StayIndex {
	idx := newStayIndex()
	for _, e := range entries {
		if !e.IsBooking() {
			continue
		}
		key := model.StayKey(e.GuestName, e.BookedBy)
		if st, ok := idx.byKey[key]; ok {
			st.Dates = append(st.Dates, e.Date)
			continue
		}
		checkIn := e.CheckIn
		if checkIn == "" {
			checkIn = e.Date
		}
		guests := e.Guests
		if guests == 0 {
			guests = model.DefaultGuests
		}
		idx.byKey[key] = &model.Stay{
			GuestName:     e.GuestName,
			Platform:      e.BookedBy,
			PropertyTitle: propertyTitle,
			CheckIn:       checkIn,
			Guests:        guests,
			IsPast:        e.IsPast,
			Dates:         []string{e.Date},
		}
		idx.order = append(idx.order, key)
	}
	return idx
}
