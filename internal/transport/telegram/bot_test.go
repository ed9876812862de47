package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestSplitHTML(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{name: "short", text: "hello", maxLen: 10, want: []string{"hello"}},
		{name: "newline break", text: "aaaa\nbbbb\ncccc", maxLen: 10, want: []string{"aaaa\nbbbb", "cccc"}},
		{name: "hard cut", text: strings.Repeat("x", 12), maxLen: 5, want: []string{"xxxxx", "xxxxx", "xx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitHTML(tt.text, tt.maxLen))
		})
	}
}

func TestBot_Allowed(t *testing.T) {
	tests := []struct {
		name    string
		ownerID int64
		user    *tele.User
		want    bool
	}{
		{name: "open bot", ownerID: 0, user: &tele.User{ID: 42}, want: true},
		{name: "owner", ownerID: 42, user: &tele.User{ID: 42}, want: true},
		{name: "stranger", ownerID: 42, user: &tele.User{ID: 7}, want: false},
		{name: "no sender", ownerID: 42, user: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Bot{ownerID: tt.ownerID}
			assert.Equal(t, tt.want, b.allowed(tt.user))
		})
	}
}
