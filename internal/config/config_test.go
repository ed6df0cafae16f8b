package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5002, cfg.ServerPort)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "json", cfg.StoreDriver)
	assert.Equal(t, "ollama", cfg.InferenceProvider)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	assert.Equal(t, "gemma:2b", cfg.InferenceModel)
	assert.Equal(t, 120*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "@hourly", cfg.BackupSchedule)
	assert.Equal(t, 24, cfg.BackupRetention)
	assert.Empty(t, cfg.JWTSecret, "no built-in signing key")
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("DATA_DIR", "/var/lib/quiz")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("INFERENCE_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("BACKUP_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "", cfg.BackupSchedule)
	assert.Equal(t, filepath.Join("/var/lib/quiz", "users.json"), cfg.UsersFile())
	assert.Equal(t, filepath.Join("/var/lib/quiz", "quiz_history.json"), cfg.QuizHistoryFile())
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":               "abc",
		"INFERENCE_TIMEOUT":  "soon",
		"BACKUP_RETENTION":   "many",
		"STORE_DRIVER":       "postgres",
		"INFERENCE_PROVIDER": "carrier-pigeon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir on Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
