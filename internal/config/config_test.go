package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseVars() map[string]string {
	return map[string]string{
		"SECRET_KEY":     "0123456789abcdef0123456789abcdef",
		"DATABASE_URL":   "sqlite://",
		"ADMIN_USERNAME": "admin",
		"ADMIN_PASSWORD": "s3cret",
	}
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(baseVars())
	require.NoError(t, err)

	assert.Equal(t, "AI Solutions Backend API", cfg.App.Name)
	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.App.Addr())
	assert.Equal(t, "/admin", cfg.App.DashboardURL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Email.Enabled)
	assert.False(t, cfg.Auth.WeakSecret())
}

func TestLoadFromMissingRequired(t *testing.T) {
	for _, key := range []string{"SECRET_KEY", "DATABASE_URL", "ADMIN_USERNAME"} {
		t.Run(key, func(t *testing.T) {
			vars := baseVars()
			delete(vars, key)
			_, err := LoadFrom(vars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadFromEmptyRequired(t *testing.T) {
	vars := baseVars()
	vars["SECRET_KEY"] = ""
	_, err := LoadFrom(vars)
	require.Error(t, err)
}

func TestLoadFromPasswordForms(t *testing.T) {
	vars := baseVars()
	delete(vars, "ADMIN_PASSWORD")
	_, err := LoadFrom(vars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")

	vars["ADMIN_PASSWORD_HASH"] = "$2a$10$abcdefghijklmnopqrstuv"
	cfg, err := LoadFrom(vars)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", cfg.Auth.AdminPasswordHash)
}

func TestLoadFromEmailRequiresRecipient(t *testing.T) {
	vars := baseVars()
	vars["EMAIL_ENABLED"] = "true"
	_, err := LoadFrom(vars)
	require.Error(t, err)

	vars["NOTIFY_EMAIL"] = "sales@example.com"
	cfg, err := LoadFrom(vars)
	require.NoError(t, err)
	assert.True(t, cfg.Email.Enabled)
}

func TestWeakSecret(t *testing.T) {
	vars := baseVars()
	vars["SECRET_KEY"] = "short"
	cfg, err := LoadFrom(vars)
	require.NoError(t, err)
	assert.True(t, cfg.Auth.WeakSecret())
}

func TestDatabaseURL(t *testing.T) {
	tests := []struct {
		url      string
		postgres bool
		path     string
		memory   bool
	}{
		{url: "postgres://u:p@localhost:5432/app", postgres: true},
		{url: "postgresql://u:p@db/app?sslmode=disable", postgres: true},
		{url: "host=localhost user=u dbname=app", postgres: true},
		{url: "sqlite:///./app.db", path: "./app.db"},
		{url: "sqlite:////var/lib/app.db", path: "/var/lib/app.db"},
		{url: "sqlite://", path: ":memory:", memory: true},
		{url: "sqlite:///:memory:", path: ":memory:", memory: true},
		{url: "app.db", path: "app.db"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			c := DatabaseConfig{URL: tt.url}
			assert.Equal(t, tt.postgres, c.IsPostgres())
			if !tt.postgres {
				assert.Equal(t, tt.path, c.GetSQLitePath())
			}
			assert.Equal(t, tt.memory, c.IsMemory())
		})
	}
}

func TestLoadFromRejectsNonBcryptHash(t *testing.T) {
	vars := baseVars()
	vars["ADMIN_PASSWORD_HASH"] = "plaintext"
	_, err := LoadFrom(vars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcrypt")
}
