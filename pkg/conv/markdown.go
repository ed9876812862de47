package conv

import (
	stdhtml "html"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions  = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags   = html.CommonFlags | html.HrefTargetBlank
	tgPolicy    = bluemonday.NewPolicy()
	stripPolicy = bluemonday.StrictPolicy()
)

func init() {
	// Allowed tags https://core.telegram.org/bots/api#html-style
	tgPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre", "blockquote")
	tgPolicy.AllowAttrs("href").OnElements("a")
	tgPolicy.AllowAttrs("class").OnElements("code")
}

func render(md []byte, flags html.Flags) []byte {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: flags})
	return markdown.Render(p.Parse(md), renderer)
}

func MarkdownToTelegramHTML(md []byte) string {
	return string(tgPolicy.SanitizeBytes(render(md, htmlFlags)))
}

// StripMarkdown returns the plain text of md with whitespace collapsed.
// Smartypants is off so quotes and dashes come back unchanged.
func StripMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	text := stripPolicy.SanitizeBytes(render([]byte(md), html.FlagsNone))
	return strings.Join(strings.Fields(stdhtml.UnescapeString(string(text))), " ")
}
