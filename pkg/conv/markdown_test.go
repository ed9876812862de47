package conv

import (
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain reply", input: "I am here with you.", expected: "I am here with you.\n"},
		{name: "bold", input: "**breathe**", expected: "<strong>breathe</strong>\n"},
		{name: "italic", input: "*slowly*", expected: "<em>slowly</em>\n"},
		{name: "nested emphasis", input: "***gently***", expected: "<strong><em>gently</em></strong>\n"},
		{name: "underscore bold", input: "__rest__", expected: "<strong>rest</strong>\n"},
		{name: "underline html kept", input: "<u>soft</u>", expected: "<u>soft</u>\n"},
		{name: "strikethrough", input: "~~alone~~", expected: "<del>alone</del>\n"},
		{name: "inline code", input: "`/mode quick`", expected: "<code>/mode quick</code>\n"},
		{
			name:     "fenced block",
			input:    "```\nquick\nhybrid\n```",
			expected: "<pre><code>quick\nhybrid\n</code></pre>\n",
		},
		{
			name:     "fenced block with language",
			input:    "```json\n{}\n```",
			expected: "<pre><code class=\"language-json\">{}\n</code></pre>\n",
		},
		{name: "quote", input: "> you matter", expected: "<blockquote>\nyou matter\n</blockquote>\n"},
		{
			name:     "link loses target",
			input:    "[help](https://example.org/care)",
			expected: "<a href=\"https://example.org/care\">help</a>\n",
		},
		{name: "heading flattened", input: "# Tonight", expected: "Tonight\n"},
		{name: "script removed", input: "<script>alert(1)</script>", expected: "\n"},
		{
			name:     "glyph footer",
			input:    "I hear you.\n\n_🌙 moon_",
			expected: "I hear you.\n\n<em>🌙 moon</em>\n",
		},
		{
			name:     "mixed",
			input:    "**Mode** is *quick*, try `/mode hybrid`",
			expected: "<strong>Mode</strong> is <em>quick</em>, try <code>/mode hybrid</code>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarkdownToTelegramHTML([]byte(tt.input)); got != tt.expected {
				t.Errorf("MarkdownToTelegramHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input", input: "  ", expected: ""},
		{name: "plain text", input: "You are not alone.", expected: "You are not alone."},
		{name: "emphasis removed", input: "**I hear you.** Take a *slow* breath.", expected: "I hear you. Take a slow breath."},
		{name: "apostrophe kept", input: "It's okay to rest.", expected: "It's okay to rest."},
		{name: "paragraphs joined", input: "First thought.\n\nSecond thought.", expected: "First thought. Second thought."},
		{name: "raw html dropped", input: "<b>Gentle</b> words", expected: "Gentle words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripMarkdown(tt.input)
			if result != tt.expected {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
