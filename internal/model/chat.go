package model

import "time"

// Sender identifies who wrote a chat message.
type Sender string

const (
    SenderGuest Sender = "guest"
    SenderHost  Sender = "host"
)

// TimestampLayout renders message times the way the dashboard shows them,
// e.g. "Dec 05, 12:00 AM".
const TimestampLayout = "Jan 02, 3:04 PM"

// Message is a single entry of a chat thread.
type Message struct {
    Text      string    `json:"text"`
    Sender    Sender    `json:"sender"`
    Timestamp time.Time `json:"timestamp"`
}

// Display formats the message timestamp for the conversation view.
func (m Message) Display() string { return m.Timestamp.Format(TimestampLayout) }

// Chat is a guest conversation shown in the host inbox.  Chats produced by
// the stay pipeline are marked IsAuto and always contain messages.
type Chat struct {
    ID        string    `json:"id"`
    GuestName string    `json:"guest_name"`
    Platform  string    `json:"platform"`
    Preview   string    `json:"preview"`
    IsAuto    bool      `json:"is_auto"`
    Messages  []Message `json:"messages"`
}

// ChatID derives the conversation id for a guest on a platform.
func ChatID(guestName, platform string) string {
    return "chat-" + StayKey(guestName, platform)
}
