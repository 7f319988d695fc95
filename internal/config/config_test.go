package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Minute, cfg.RoleTTL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "mailer-svc", cfg.MailerGroup)
	assert.Equal(t, 4, cfg.MailerWorkers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("AUTH_ROLE_TTL", "30s")
	t.Setenv("SMTP_PORT", "2525")

	cfg := Load()
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.RoleTTL)
	assert.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("AUTH_ROLE_TTL", "sometimes")
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("MAILER_WORKERS", "many")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.RoleTTL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 4, cfg.MailerWorkers)
}
