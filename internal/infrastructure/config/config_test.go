package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
tickets:
  reference_retries: 3
`), 0o600))

	t.Setenv("HELPDESK_AUTH_JWT_SECRET", "from-env")

	cfg, err := Load("release", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3, cfg.Tickets.ReferenceRetries)
	assert.Equal(t, "from-env", cfg.Auth.JWT.Secret)
	assert.Equal(t, 15, cfg.Auth.JWT.AccessExpMinutes)
	assert.Same(t, cfg, Get())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
