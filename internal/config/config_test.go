package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3vBQ9vO8vKEkDjbZ6vW0Yla"

func baseEnv() map[string]string {
	return map[string]string{
		"ADMIN_EMAIL":         "admin@school.test",
		"ADMIN_PASSWORD_HASH": testHash,
		"JWT_SECRET":          strings.Repeat("s", MinJWTSecretLength),
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(baseEnv())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 12*time.Hour, cfg.Auth.JWTTTL)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "log", cfg.Mail.Driver)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.Blob.UseAPI())

	// 宛先未指定なら管理者メールに送る
	assert.Equal(t, []string{"admin@school.test"}, cfg.Mail.To)
}

func TestParse_Prefixes(t *testing.T) {
	environ := baseEnv()
	environ["BLOB_READ_WRITE_TOKEN"] = "vercel_blob_rw_x"
	environ["BLOB_TIMEOUT"] = "5s"
	environ["CACHE_DRIVER"] = "redis"
	environ["CACHE_REDIS_ADDR"] = "localhost:6379"
	environ["CACHE_REDIS_TTL"] = "24h"
	environ["MAIL_DRIVER"] = "sendgrid"
	environ["MAIL_SENDGRID_API_KEY"] = "SG.key"
	environ["MAIL_TO"] = "office@school.test,head@school.test"
	environ["UPLOAD_MAX_BYTES"] = "2048"
	environ["RATELIMIT_IP_LIMIT"] = "3"
	environ["CORS_ALLOWED_ORIGINS"] = "https://school.test,https://admin.school.test"

	cfg, err := Parse(environ)
	require.NoError(t, err)

	assert.True(t, cfg.Blob.UseAPI())
	assert.Equal(t, 5*time.Second, cfg.Blob.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.Cache.RedisTTL)
	assert.Equal(t, "SG.key", cfg.Mail.SendGridAPIKey)
	assert.Equal(t, int64(2048), cfg.Upload.MaxBytes)
	assert.Equal(t, 3, cfg.RateLimit.Limit)
	assert.Len(t, cfg.CORSOrigins, 2)

	to, err := cfg.Mail.Recipients()
	require.NoError(t, err)
	require.Len(t, to, 2)
	assert.Equal(t, "head@school.test", to[1].Address)

	from, err := cfg.Mail.Sender()
	require.NoError(t, err)
	assert.Equal(t, "School Website", from.Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m map[string]string)
		wantErr string
	}{
		{"missing admin email", func(m map[string]string) { delete(m, "ADMIN_EMAIL") }, "ADMIN_EMAIL"},
		{"plain password", func(m map[string]string) { m["ADMIN_PASSWORD_HASH"] = "admin123" }, "bcrypt"},
		{"short secret", func(m map[string]string) { m["JWT_SECRET"] = "short" }, "JWT_SECRET"},
		{"unknown cache driver", func(m map[string]string) { m["CACHE_DRIVER"] = "mongo" }, "CACHE_DRIVER"},
		{"sqlite without dsn", func(m map[string]string) { m["CACHE_DRIVER"] = "sqlite" }, "CACHE_DSN"},
		{"redis without addr", func(m map[string]string) { m["CACHE_DRIVER"] = "redis" }, "CACHE_REDIS_ADDR"},
		{"sendgrid without key", func(m map[string]string) { m["MAIL_DRIVER"] = "sendgrid" }, "SENDGRID_API_KEY"},
		{"bad recipient", func(m map[string]string) { m["MAIL_TO"] = "not-an-address" }, "MAIL_TO"},
		{"bad log format", func(m map[string]string) { m["LOG_FORMAT"] = "xml" }, "LOG_FORMAT"},
		{"zero upload ceiling", func(m map[string]string) { m["UPLOAD_MAX_BYTES"] = "0" }, "UPLOAD_MAX_BYTES"},
		{"bad duration", func(m map[string]string) { m["JWT_TTL"] = "soon" }, "parse env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environ := baseEnv()
			tt.mutate(environ)

			_, err := Parse(environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "ADMIN_EMAIL=dotenv@school.test\n" +
		"ADMIN_PASSWORD_HASH='" + testHash + "'\n" +
		"JWT_SECRET=" + strings.Repeat("x", 40) + "\n" +
		"LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	// 既存の環境変数が優先される
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("ADMIN_EMAIL", "")
	require.NoError(t, os.Unsetenv("ADMIN_EMAIL"))
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	require.NoError(t, os.Unsetenv("ADMIN_PASSWORD_HASH"))
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv@school.test", cfg.Auth.AdminEmail)
	assert.Equal(t, "warn", cfg.LogLevel)
}
