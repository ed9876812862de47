package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type chatHandler interface {
	Handle(ctx context.Context, sessionID, text string) (string, error)
}

type Bot struct {
	bot     *tele.Bot
	chat    chatHandler
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	chat chatHandler,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		chat:    chat,
		sender:  newSender(b),
		ownerID: cfg.GetTelegramOwnerID(),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !bot.allowed(c.Sender()) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Int64("owner_id", b.ownerID).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// allowed reports whether u may talk to the bot. Owner 0 opens the bot to
// everyone.
func (b *Bot) allowed(u *tele.User) bool {
	if b.ownerID == 0 {
		return true
	}
	return u != nil && u.ID == b.ownerID
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	_ = c.Notify(tele.Typing)

	out, err := b.chat.Handle(ctx, sessionID, c.Text())
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("chat failed")
		return c.Send("Something went wrong on my side. Please try again later.")
	}
	if out == "" {
		return nil
	}

	return b.sender.sendMarkdown(ctx, c.Recipient(), out)
}
