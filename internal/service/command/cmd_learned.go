package command

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/internal/service/learning"
)

const (
	learnedDefaultLimit = 5
	learnedMaxLimit     = 20
	learnedMinScore     = 0.7
)

type LearnedCommand struct {
	cfg       core.AppConfig
	repo      core.LearnedRepository
	formatter *ResponseFormatter
}

func NewLearnedCommand(cfg core.AppConfig, repo core.LearnedRepository) *LearnedCommand {
	return &LearnedCommand{
		cfg:       cfg,
		repo:      repo,
		formatter: NewResponseFormatter(),
	}
}

func (c *LearnedCommand) Name() string {
	return "learned"
}

func (c *LearnedCommand) Description() string {
	return "Show phrases learned from this conversation"
}

func (c *LearnedCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	limit := learnedDefaultLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return "", fmt.Errorf("limit must be a positive number")
		}
		limit = min(n, learnedMaxLimit)
	}

	scope := ""
	if c.cfg.IsUserIsolation() {
		scope = sessionID
	}

	stored, err := c.repo.TopEntries(ctx, scope, learnedMinScore, limit)
	if err != nil {
		return "", fmt.Errorf("failed to load learned entries: %w", err)
	}

	items := make([]string, 0, len(stored))
	for _, s := range stored {
		entry, err := learning.ParseEntry(s)
		if err != nil || len(entry.KeyPhrases) == 0 {
			continue
		}
		items = append(items, fmt.Sprintf("%.2f %s (%s)",
			entry.ConfidenceScore,
			entry.KeyPhrases[0],
			strings.Join(emotionNames(entry.EmotionKeywords), ", "),
		))
	}

	if len(items) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Learned Phrases"),
			c.formatter.Label("Status", "nothing learned yet"),
			c.formatter.Tip("switch to /mode hybrid so replies are generated and remembered"),
		), nil
	}

	return c.formatter.Combine(
		c.formatter.Info("Learned Phrases"),
		c.formatter.Label("Entries", strconv.Itoa(len(items))),
		"\n",
		c.formatter.List(items),
	), nil
}

func emotionNames(m map[string][]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
