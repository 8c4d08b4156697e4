package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("CONVERSATION_TTL", "30m")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("REDIS_ENABLED", "false")

	c := Load()
	if c.ConversationTTL != 30*time.Minute {
		t.Errorf("ConversationTTL = %v", c.ConversationTTL)
	}
	if c.BcryptCost != 10 {
		t.Errorf("invalid int should fall back, got %d", c.BcryptCost)
	}
	if c.RedisEnabled {
		t.Error("RedisEnabled override ignored")
	}
	if c.ResetTokenTTL != time.Hour {
		t.Errorf("ResetTokenTTL = %v", c.ResetTokenTTL)
	}
	if c.EmailMaxRetries != 5 || c.EmailRetryDelay != 30*time.Second {
		t.Errorf("email retry defaults = %d, %v", c.EmailMaxRetries, c.EmailRetryDelay)
	}
	if c.ResetExposeLink {
		t.Error("reset links must not be exposed by default")
	}
}

func TestCORSOrigins(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " https://a.test, ,https://b.test "}
	got := c.CORSOrigins()
	if len(got) != 2 || got[0] != "https://a.test" || got[1] != "https://b.test" {
		t.Fatalf("origins = %v", got)
	}
}

func TestPostgresDSN(t *testing.T) {
	c := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	if got := c.PostgresDSN(); got != "postgres://u:p@h:5432/d?sslmode=disable" {
		t.Fatalf("dsn = %s", got)
	}
}
