package test

import (
	"os"
	"testing"
)

const (
	PostgresDSNEnv = "SAORI_TEST_POSTGRES_DSN"
	RedisURLEnv    = "SAORI_TEST_REDIS_URL"
)

// RequireEnv returns the value of key or skips the test when it is unset.
// Tests against real Postgres or Redis are opt-in this way.
func RequireEnv(t *testing.T, key string) string {
	t.Helper()

	v := os.Getenv(key)
	if v == "" {
		t.Skipf("%s not set", key)
	}
	return v
}
