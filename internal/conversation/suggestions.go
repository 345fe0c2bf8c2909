package conversation

// replySuggestions is the fixed set of replies offered to the host.
var replySuggestions = []string{
	"Thank you for your message! Check-in is at 3:00 PM. I'll send you detailed instructions closer to your arrival date.",
	"Yes, free parking is included with your reservation. There's a dedicated spot right in front of the property.",
	"I appreciate your inquiry! The property accommodates up to 4 guests comfortably.",
}

// Suggestions returns a copy of the reply suggestions offered for any chat.
func Suggestions() []string {
	out := make([]string, len(replySuggestions))
	copy(out, replySuggestions)
	return out
}
