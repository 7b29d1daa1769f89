package assistant

import "strings"

// phrases that signal the assistant asked the shopper a clarifying question
var clarificationPhrases = []string{
	"could you tell me more",
	"what type of",
	"can you specify",
	"would you like",
	"do you prefer",
	"what is your",
	"could you clarify",
}

// NeedsClarification reports whether the generated reply asks a clarifying
// question, by case-insensitive substring search over a fixed phrase list.
// A literal "?" is deliberately not a trigger: replies routinely end with
// "anything else?" and flagging those drowns the signal. This is a heuristic;
// false positives and negatives are acceptable.
func NeedsClarification(reply string) bool {
	lowered := strings.ToLower(reply)

	for _, phrase := range clarificationPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}

	return false
}
