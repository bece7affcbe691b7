package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/hrms")
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("SEED_DEPARTMENTS", "")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("AUTH_BCRYPT_COST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, DevJWTSecret, cfg.Auth.JWTSecret)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"HR", "Engineering", "Quality Assurance", "Marketing"}, cfg.Seed.Departments)
}

func TestLoad_Lists(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost/hrms")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SEED_DEPARTMENTS", "Ops")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"Ops"}, cfg.Seed.Departments)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Env: "production"},
			Postgres: PostgresConfig{DSN: "postgres://db"},
			Auth:     AuthConfig{JWTSecret: "real-secret", AccessTokenTTLMinutes: 30},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Postgres.DSN = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Auth.JWTSecret = DevJWTSecret
	assert.Error(t, cfg.Validate())

	cfg.App.Env = "development"
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Auth.AccessTokenTTLMinutes = 0
	assert.Error(t, cfg.Validate())
}

func TestAppConfig_RequestTimeout(t *testing.T) {
	assert.Zero(t, AppConfig{}.RequestTimeout())
	assert.Equal(t, "5s", AppConfig{RequestTimeoutSeconds: 5}.RequestTimeout().String())
	assert.Equal(t, "0.0.0.0:8080", AppConfig{Host: "0.0.0.0", Port: "8080"}.Addr())
}
