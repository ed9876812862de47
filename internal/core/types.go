package core

import "time"

const (
	SaoriName          = "Saori"
	SaoriUserAgent     = "Saori-Companion/0.1"
	SaoriRepositoryURL = "https://github.com/sandevgo/saori"
	SaoriVersion       = "0.1.0"
)

// Modes accepted by the pipeline. Unknown modes behave like ModeHybrid.
const (
	ModeQuick       = "quick"
	ModeHybrid      = "hybrid"
	ModeLocal       = "local"
	ModeAIPreferred = "ai_preferred"
)

// Methods reported in ResponseLog.Method.
const (
	MethodQuick    = "quick_response"
	MethodLearned  = "learned_response"
	MethodAI       = "ai_response"
	MethodFallback = "fallback_response"
)

// Request is a normalized inbound message.
type Request struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
	UserID  string `json:"user_id,omitempty"`
}

type Glyph struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Depth       int    `json:"depth"`
}

// TagRecord is tone and style metadata used to flavor the system prompt.
type TagRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tone        string `json:"tone"`
	Style       string `json:"style"`
	Depth       int    `json:"depth"`
}

type ResponseLog struct {
	ProcessingTime   string   `json:"processing_time"`
	Method           string   `json:"method"`
	EmotionsDetected []string `json:"emotions_detected,omitempty"`
	CacheUsed        bool     `json:"cache_used"`
}

// Reply is the payload returned to the caller and stored in the response cache.
type Reply struct {
	Reply          string      `json:"reply"`
	Glyph          *TagRecord  `json:"glyph"`
	ParsedGlyphs   []Glyph     `json:"parsed_glyphs"`
	UpsertedGlyphs []Glyph     `json:"upserted_glyphs"`
	Log            ResponseLog `json:"log"`
}

// LearnedEntry is the decoded form of a StoredLearnedEntry.
type LearnedEntry struct {
	ID               string
	UserID           string
	EmotionKeywords  map[string][]string
	ResponsePatterns map[string]bool
	KeyPhrases       []string
	ConfidenceScore  float64
	CreatedAt        time.Time
}
