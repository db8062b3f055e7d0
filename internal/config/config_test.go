package config_test

import (
	"testing"
	"time"

	"github.com/mrqz-remodeling/console-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Auth.SessionStore)
	assert.Equal(t, 15*time.Minute, cfg.Auth.SessionTTLDuration())
	assert.Equal(t, "MRQZ REMODELING LLC", cfg.Document.CompanyName)
	assert.Equal(t, 30*time.Second, cfg.Document.TimeoutDuration())
	assert.Equal(t, "/login", cfg.Auth.LoginURL)
	assert.Empty(t, cfg.Auth.AllowedEmails)
}

func TestLoad_AllowedEmailsFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("AUTH_ALLOWEDEMAILS", "owner@example.com, office@example.com ,,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"owner@example.com", "office@example.com"}, cfg.Auth.AllowedEmails)
}

func TestLoad_AllowedEmailsAlias(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALLOWED_EMAILS", "owner@example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"owner@example.com"}, cfg.Auth.AllowedEmails)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.App.Port)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "require",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=require", cfg.ConnectionString())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, config.SplitList(" a ,b,, "))
	assert.Empty(t, config.SplitList(""))
}
