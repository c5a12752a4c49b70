package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, 60*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 1.0, cfg.AuthRatePerS)
	assert.Equal(t, 5, cfg.AuthRateBurst)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("GRPC_ADDR", "")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("TOKEN_TTL_MINUTES", "15")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000/, https://flixnet.example ")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.GRPCAddr)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://flixnet.example"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
}

func TestFromEnvErrors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
	t.Run("bad driver", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("DB_DRIVER", "mysql")
		_, err := FromEnv()
		assert.Error(t, err)
	})
	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("TOKEN_TTL_MINUTES", "soon")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "TOKEN_TTL_MINUTES")
	})
	t.Run("bad proxy", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, not-an-ip")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "TRUSTED_PROXIES")
	})
}
