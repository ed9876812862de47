package responder

import (
	"fmt"
	"os"
	"strings"

	"github.com/sandevgo/saori/internal/core"
)

const DefaultPersona = `You are Saori, a gentle emotional companion.
Respond with warmth in two to four short sentences.
Acknowledge the feeling before offering anything else.
Never diagnose and never give medical advice.`

const plainStyle = "Use plain everyday words. Avoid metaphors and poetic phrasing."

type SysPrompt struct {
	cfg core.AppConfig
}

func NewSysPrompt(cfg core.AppConfig) *SysPrompt {
	return &SysPrompt{cfg: cfg}
}

// Build returns the persona from the runtime directory when present,
// otherwise the built-in one. The plain style and the tag's tone and style
// are appended when given.
func (p *SysPrompt) Build(plain bool, tag *core.TagRecord) string {
	persona := DefaultPersona
	if p.cfg != nil {
		if content, err := os.ReadFile(p.cfg.GetPersonaPath()); err == nil && strings.TrimSpace(string(content)) != "" {
			persona = strings.TrimSpace(string(content))
		}
	}

	lines := []string{persona}
	if plain {
		lines = append(lines, plainStyle)
	}
	if tag != nil {
		if tone := strings.TrimSpace(tag.Tone); tone != "" {
			lines = append(lines, fmt.Sprintf("Keep a %s tone.", tone))
		}
		if style := strings.TrimSpace(tag.Style); style != "" {
			lines = append(lines, style)
		}
	}
	return strings.Join(lines, "\n")
}
