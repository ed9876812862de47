package learning

import "strings"

type emotion struct {
	name     string
	literals []string
}

// emotionTable is ordered; callers that need a single winner take the first
// detected name.
var emotionTable = []emotion{
	{name: "grief", literals: []string{"grief", "grieving", "loss", "lost", "mourning", "died", "passed away", "miss them", "missing"}},
	{name: "joy", literals: []string{"joy", "happy", "excited", "grateful", "delighted", "celebrate", "wonderful"}},
	{name: "anxiety", literals: []string{"anxious", "anxiety", "worried", "nervous", "panic", "overwhelmed", "scared", "afraid"}},
	{name: "love", literals: []string{"love", "loving", "adore", "cherish", "affection", "heart", "romance"}},
	{name: "confusion", literals: []string{"confused", "confusion", "lost", "don't understand", "unsure", "uncertain", "mixed up"}},
	{name: "anger", literals: []string{"angry", "anger", "furious", "mad", "frustrated", "rage", "irritated"}},
	{name: "healing", literals: []string{"healing", "heal", "recover", "recovery", "better", "growth", "moving on"}},
	{name: "vulnerable", literals: []string{"vulnerable", "exposed", "fragile", "raw", "open up", "ashamed", "insecure"}},
}

// Emotions maps a detected emotion to the literals that matched.
type Emotions map[string][]string

// DetectEmotions tests every literal of every emotion for case-insensitive
// containment in msg.
func DetectEmotions(msg string) Emotions {
	lower := strings.ToLower(msg)
	found := Emotions{}
	for _, e := range emotionTable {
		var matched []string
		for _, lit := range e.literals {
			if strings.Contains(lower, lit) {
				matched = append(matched, lit)
			}
		}
		if len(matched) > 0 {
			found[e.name] = matched
		}
	}
	return found
}

// Names returns detected emotion names in table order.
func (e Emotions) Names() []string {
	names := make([]string, 0, len(e))
	for _, em := range emotionTable {
		if _, ok := e[em.name]; ok {
			names = append(names, em.name)
		}
	}
	return names
}

// Intersects reports whether any emotion name is present in both sets.
func (e Emotions) Intersects(other map[string][]string) bool {
	for name := range other {
		if _, ok := e[name]; ok {
			return true
		}
	}
	return false
}
