package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "move-market", cfg.ServiceName)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "movemarket", cfg.Database.Name)
	assert.Equal(t, 5672, cfg.RabbitMQ.Port)
	assert.Equal(t, 3000, cfg.Services.APIPort)
	assert.Equal(t, 3001, cfg.Services.NotificationPort)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_PORT", "15432")
	t.Setenv("API_PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.Services.APIPort)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoad_BadPorts(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("POSTGRES_PORT", "70000")
	t.Setenv("RABBITMQ_PORT", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_PORT")
	assert.Contains(t, err.Error(), "RABBITMQ_PORT")
}
