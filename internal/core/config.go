package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetPersonaPath() string
	GetCacheTTL() time.Duration
	GetCompletionTimeout() time.Duration
	IsUserIsolation() bool
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetOpenAIAPIKey() string
	GetOpenRouterAPIKey() string
	GetAnthropicAPIKey() string
	GetOllamaBaseURL() string
	GetCustomOpenAIBaseURL() string
	GetCustomOpenAIAPIKey() string
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
