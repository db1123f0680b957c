package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadBaseWithEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", `
server:
  port: ":8080"
db:
  host: localhost
  port: 5432
  user: mailmind
  name: mailmind
llm:
  openai_model: gpt-4o-mini
  gemini_model: gemini-2.5-flash
`)
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("CONFIG_ENV", "base")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAIModel)
	// timeout defaults when the file omits it
	assert.Equal(t, 30, cfg.LLM.TimeoutSeconds)
}

func TestLoadOverlayFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", `
server:
  port: ":8080"
db:
  host: localhost
`)
	writeConfig(t, dir, "staging.yaml", `
db:
  host: staging-db
`)
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("CONFIG_ENV", "staging")
	t.Setenv("DB_HOST", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging-db", cfg.DB.Host)
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestLoadMissingBaseFails(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("CONFIG_ENV", "base")

	_, err := Load()
	assert.Error(t, err)
}
