package installer

const (
	keyProvider       = "SAORI_LLM_PROVIDER"
	keyModel          = "SAORI_LLM_MODEL"
	keyCustomURL      = "SAORI_CUSTOM_OPENAI_BASE_URL"
	keyOllamaURL      = "SAORI_OLLAMA_BASE_URL"
	keyStoreDriver    = "SAORI_STORE_DRIVER"
	keyPostgresDSN    = "SAORI_POSTGRES_DSN"
	keyChannel        = "SAORI_CHAT_CHANNEL"
	keyEnableTelegram = "SAORI_ENABLE_TELEGRAM"
	keyEnableCLI      = "SAORI_ENABLE_CLI"
	keyTelegramToken  = "SAORI_TELEGRAM_TOKEN"
	keyTelegramOwner  = "SAORI_TELEGRAM_OWNER_ID"
	keyDebug          = "SAORI_DEBUG"
)

type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) is(key, value string) bool {
	return s.EnvVars[key] == value
}
