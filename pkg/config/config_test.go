package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithPath_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=remind-test\n"), 0o600))

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, "remind-test", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.Equal(t, 12, cfg.Paging.Size)
	assert.Equal(t, 5, cfg.Paging.PageNum)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowOrigins)
}

func TestLoadWithPath_CORSOrigins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "CORS_ALLOW_ORIGINS=https://remind.dev, https://admin.remind.dev\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://remind.dev", "https://admin.remind.dev"}, cfg.CORS.AllowOrigins)
}

func TestLoadWithPath_MissingFile(t *testing.T) {
	_, err := LoadWithPath(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Name: "remind", Environment: "development"},
		Server: ServerConfig{Port: 8080},
		JWT: JWTConfig{
			Secret:          DefaultJWTSecret,
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Paging: PagingConfig{Size: 12, PageNum: 5},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("secret not base64", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = "not base64 !!"
		assert.Error(t, cfg.Validate())
	})

	t.Run("default secret in production", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("kafka enabled without brokers", func(t *testing.T) {
		cfg := validConfig()
		cfg.Kafka.Enabled = true
		assert.Error(t, cfg.Validate())
	})

	t.Run("wildcard cors origin in production", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "production"
		cfg.JWT.Secret = "cHJvZHVjdGlvbi1zaWduaW5nLWtleS10aGF0LWlzLWxvbmctZW5vdWdo"
		cfg.CORS.AllowOrigins = []string{"*"}
		assert.Error(t, cfg.Validate())

		cfg.CORS.AllowOrigins = []string{"https://remind.dev"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("storage enabled without bucket", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.Enabled = true
		assert.Error(t, cfg.Validate())
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, splitList(" a:1 , b:2,,"))
	assert.Nil(t, splitList(""))
}
