package learning

import (
	"math"
	"regexp"
	"strings"

	"github.com/sandevgo/saori/pkg/conv"
)

const (
	maxKeyPhrases  = 3
	minPhraseWords = 4
	maxPhraseWords = 12

	maxConfidence = 0.95
	baseScore     = 0.4
	emotionWeight = 0.25
	patternWeight = 0.15
	phraseWeight  = 0.1
)

type pattern struct {
	name string
	re   *regexp.Regexp
}

var responsePatterns = []pattern{
	{name: "acknowledgment", re: regexp.MustCompile(`(?i)\b(i hear you|i understand|that sounds|it sounds like|i can see|i notice)`)},
	{name: "validation", re: regexp.MustCompile(`(?i)\b(it'?s (okay|ok|normal|natural|understandable)|makes sense|valid|you'?re not alone)`)},
	{name: "guidance", re: regexp.MustCompile(`(?i)\b(try|consider|you might|you could|perhaps|it may help|one small step)\b`)},
	{name: "empathy", re: regexp.MustCompile(`(?i)\b(i'?m (so )?sorry|that must|must feel|i'?m here|with you)`)},
	{name: "timeline", re: regexp.MustCompile(`(?i)\b(today|tomorrow|tonight|yesterday|right now|lately|over time|someday|one day|for now)\b`)},
	{name: "question", re: regexp.MustCompile(`\?`)},
	{name: "metaphor", re: regexp.MustCompile(`(?i)\b(like a|as if|as though)\b`)},
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// DetectPatterns flags each named pattern found in reply. Every pattern
// name is present in the result.
func DetectPatterns(reply string) map[string]bool {
	found := make(map[string]bool, len(responsePatterns))
	for _, p := range responsePatterns {
		found[p.name] = p.re.MatchString(reply)
	}
	return found
}

func countTrue(flags map[string]bool) int {
	n := 0
	for _, v := range flags {
		if v {
			n++
		}
	}
	return n
}

// KeyPhrases returns up to three sentences of four to twelve words, in
// reply order. Markdown is stripped first.
func KeyPhrases(reply string) []string {
	text := conv.StripMarkdown(reply)

	phrases := make([]string, 0, maxKeyPhrases)
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		words := len(strings.Fields(s))
		if words < minPhraseWords || words > maxPhraseWords {
			continue
		}
		phrases = append(phrases, s)
		if len(phrases) == maxKeyPhrases {
			break
		}
	}
	return phrases
}

// Confidence scores how reusable a learned entry is, capped at 0.95 and
// rounded to two decimals.
func Confidence(emotions, patterns, phrases int) float64 {
	score := float64(emotions)*emotionWeight +
		float64(patterns)*patternWeight +
		float64(phrases)*phraseWeight +
		baseScore
	return math.Round(math.Min(maxConfidence, score)*100) / 100
}
