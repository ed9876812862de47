package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/saori/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"SAORI_TELEGRAM_TOKEN,required,notEmpty" redact:"true"`
	// OwnerID restricts the bot to one chat. Zero allows everyone.
	OwnerID int64 `env:"SAORI_TELEGRAM_OWNER_ID" envDefault:"0"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c TelegramConfig) GetTelegramToken() string {
	return c.Token
}

func (c TelegramConfig) GetTelegramOwnerID() int64 {
	return c.OwnerID
}
