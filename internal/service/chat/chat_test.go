package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/saori/internal/core"
)

type stubCommands struct{}

func (stubCommands) Execute(_ context.Context, _ string, input string) (string, bool) {
	if input == "/help" {
		return "help text", true
	}
	return "", false
}

func (stubCommands) ListCommands() []core.Command { return nil }

type stubResponder struct {
	got   core.Request
	reply core.Reply
	err   error
}

func (s *stubResponder) Respond(_ context.Context, req core.Request) (core.Reply, error) {
	s.got = req
	return s.reply, s.err
}

type fixedMode string

func (m fixedMode) Mode(string) string { return string(m) }

func TestChat_Handle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		reply   core.Reply
		err     error
		want    string
		wantReq *core.Request
		wantErr bool
	}{
		{name: "blank", input: "   ", want: ""},
		{name: "command", input: "/help", want: "help text"},
		{
			name:    "message",
			input:   " I feel lost ",
			reply:   core.Reply{Reply: "I'm here."},
			want:    "I'm here.",
			wantReq: &core.Request{Message: "I feel lost", Mode: core.ModeHybrid, UserID: "cli-local"},
		},
		{
			name:    "responder error",
			input:   "hello",
			err:     core.ErrConfigurationMissing,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &stubResponder{reply: tt.reply, err: tt.err}
			c := New(stubCommands{}, r, fixedMode(core.ModeHybrid))

			got, err := c.Handle(context.Background(), "cli-local", tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrConfigurationMissing))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.wantReq != nil {
				assert.Equal(t, *tt.wantReq, r.got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	reply := core.Reply{
		Reply:        "That sounds heavy.",
		Glyph:        &core.TagRecord{Name: "grief"},
		ParsedGlyphs: []core.Glyph{{Name: "complex_emotion", Description: "Layered emotional expression", Depth: 3}},
	}

	assert.Equal(t,
		"That sounds heavy.\n\n_grief_\n_complex_emotion: Layered emotional expression_",
		Format(reply),
	)
	assert.Equal(t, "plain", Format(core.Reply{Reply: "plain"}))
}
