package conversation

import (
	"log"
	"time"

	"github.com/iliyamo/guest-hub/internal/model"
)

// Builder runs the stay pipeline over a listings snapshot.  Stays that
// cannot be turned into a chat are dropped and reported on Logger; they
// never fail the whole run.
type Builder struct {
	Logger *log.Logger
}

// NewBuilder returns a Builder that reports to logger, or to the standard
// logger when logger is nil.
func NewBuilder(logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{Logger: logger}
}

// Build aggregates every listing's availability into stays and synthesizes
// one chat per stay, preserving listing order and first-seen stay order.
func (b *Builder) Build(listings []model.Listing, today time.Time) []model.Chat {
	var chats []model.Chat
	for _, l := range listings {
		if len(l.Availability) == 0 {
			continue
		}
		for _, st := range AggregateStays(l.Title, l.Availability).Stays() {
			chat, err := Synthesize(*st, today)
			if err != nil {
				b.Logger.Printf("conversation: skipping stay %q on %q: %v", st.Key(), l.Title, err)
				continue
			}
			if len(chat.Messages) == 0 {
				continue
			}
			chats = append(chats, chat)
		}
	}
	return chats
}

// BuildChats runs the pipeline with the standard logger.
func BuildChats(listings []model.Listing, today time.Time) []model.Chat {
	return NewBuilder(nil).Build(listings, today)
}
