package responder

import (
	"strings"
	"unicode/utf8"
)

type quickResponse struct {
	emotion string
	reply   string
}

// quickTable is scanned in order; the first emotion contained in the
// message wins.
var quickTable = []quickResponse{
	{emotion: "grief", reply: "I'm so sorry you're carrying this grief. Loss leaves a tender space, and you don't have to hold it alone."},
	{emotion: "joy", reply: "That joy is wonderful to hear! I'm glad this moment is yours. Tell me more about it."},
	{emotion: "anxiety", reply: "Anxiety can make everything feel urgent. Let's slow down together and take one breath at a time."},
	{emotion: "love", reply: "Love like that says so much about your heart. Thank you for sharing it with me."},
	{emotion: "confusion", reply: "Confusion is a natural place to be when things are shifting. We can untangle it one piece at a time."},
	{emotion: "anger", reply: "Your anger makes sense. It often points to something that matters deeply to you."},
	{emotion: "healing", reply: "Healing isn't a straight line, and every small step you take still counts."},
	{emotion: "vulnerable", reply: "Thank you for letting yourself be vulnerable here. That takes real courage."},
}

func matchQuick(lowerMessage string) (quickResponse, bool) {
	for _, q := range quickTable {
		if strings.Contains(lowerMessage, q.emotion) {
			return q, true
		}
	}
	return quickResponse{}, false
}

const cacheKeyPrefixLen = 50

// cacheKey is the lowercased message cut to 50 characters plus the mode.
// A non-empty scope isolates keys per user.
func cacheKey(scope, message, mode string) string {
	lower := strings.ToLower(message)
	if utf8.RuneCountInString(lower) > cacheKeyPrefixLen {
		lower = string([]rune(lower)[:cacheKeyPrefixLen])
	}

	key := lower + "_" + mode
	if scope != "" {
		key = scope + ":" + key
	}
	return key
}
