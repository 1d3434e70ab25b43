package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("FIREBASE_PROJECT_ID", " demo-project ")
	t.Setenv("SERVICE_ACCOUNT_JSON", `{"client_email":"a@b"}`)
	t.Setenv("FCM_BASE_URL", "http://127.0.0.1:9999/")

	cfg := Load()

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "demo-project", cfg.ProjectID)
	assert.Equal(t, `{"client_email":"a@b"}`, cfg.ServiceAccountJSON)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.FCMBaseURL)
}

func TestLoad_DefaultBaseURL(t *testing.T) {
	t.Setenv("FCM_BASE_URL", "")

	assert.Equal(t, DefaultFCMBaseURL, Load().FCMBaseURL)
}

func TestLoad_RereadsOnEveryCall(t *testing.T) {
	t.Setenv("API_KEY", "first")
	assert.Equal(t, "first", Load().APIKey)

	t.Setenv("API_KEY", "second")
	assert.Equal(t, "second", Load().APIKey)
}

func TestLoadServer(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("APP_ENV", "Production")

	cfg := LoadServer()

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Production())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FIREBASE_PROJECT_ID=from-file\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("FIREBASE_PROJECT_ID", "")
	require.NoError(t, os.Unsetenv("FIREBASE_PROJECT_ID"))

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "from-file", Load().ProjectID)
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.Error(t, LoadDotEnv())
}
