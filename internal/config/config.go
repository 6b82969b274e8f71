// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the shortest accepted HS256 signing secret.
const MinJWTSecretLength = 32

// Config is the full service configuration.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	Version         string        `env:"VERSION" envDefault:"dev"`
	CSPEnabled      bool          `env:"CSP_ENABLED" envDefault:"true"`
	CSPReportOnly   bool          `env:"CSP_REPORT_ONLY" envDefault:"false"`

	// SiteURL and SiteName appear in the news feed.
	SiteURL  string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	SiteName string `env:"SITE_NAME" envDefault:"School News"`

	Auth      AuthConfig
	Blob      BlobConfig      `envPrefix:"BLOB_"`
	Cache     CacheConfig     `envPrefix:"CACHE_"`
	Mail      MailConfig      `envPrefix:"MAIL_"`
	Upload    UploadConfig    `envPrefix:"UPLOAD_"`
	RateLimit RateLimitConfig `envPrefix:"RATELIMIT_"`
}

// AuthConfig holds the single admin credential and token settings.
type AuthConfig struct {
	AdminEmail        string        `env:"ADMIN_EMAIL"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"` // bcrypt
	JWTSecret         string        `env:"JWT_SECRET"`
	JWTTTL            time.Duration `env:"JWT_TTL" envDefault:"12h"`
}

// BlobConfig configures the object store. Without a token the in-memory
// store is used.
type BlobConfig struct {
	Token   string        `env:"READ_WRITE_TOKEN"`
	BaseURL string        `env:"BASE_URL"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// UseAPI reports whether the hosted blob API is configured.
func (b BlobConfig) UseAPI() bool { return b.Token != "" }

// CacheConfig selects the fallback cache backend.
type CacheConfig struct {
	Driver        string        `env:"DRIVER" envDefault:"memory"`
	Dir           string        `env:"DIR" envDefault:".cache"`
	DSN           string        `env:"DSN"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string        `env:"REDIS_PREFIX" envDefault:"school-cms:"`
	RedisTTL      time.Duration `env:"REDIS_TTL" envDefault:"0s"`
}

// MailConfig configures the contact form relay.
type MailConfig struct {
	Driver         string   `env:"DRIVER" envDefault:"log"`
	From           string   `env:"FROM" envDefault:"School Website <no-reply@localhost>"`
	To             []string `env:"TO"`
	SendGridAPIKey string   `env:"SENDGRID_API_KEY"`
	SendGridHost   string   `env:"SENDGRID_HOST"`
}

// UploadConfig bounds gallery uploads.
type UploadConfig struct {
	MaxBytes int64 `env:"MAX_BYTES" envDefault:"10485760"`
}

// RateLimitConfig configures the per-IP limiter on /auth/token and /contact.
type RateLimitConfig struct {
	Enabled         bool          `env:"ENABLED" envDefault:"true"`
	Limit           int           `env:"IP_LIMIT" envDefault:"10"`
	Window          time.Duration `env:"IP_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
	IdleTTL         time.Duration `env:"IDLE_TTL" envDefault:"10m"`
	// TrustedProxies lists the proxy CIDRs whose X-Forwarded-For is honoured.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

var (
	cacheDrivers = []string{"memory", "file", "sqlite", "postgres", "redis", "none"}
	mailDrivers  = []string{"log", "sendgrid"}
	logFormats   = []string{"json", "text"}
)

// Load reads .env (when present) and the process environment.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return Parse(nil)
}

// Parse builds a Config from environ, or from the process environment when
// environ is nil, and validates it.
func Parse(environ map[string]string) (*Config, error) {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}

	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if len(cfg.Mail.To) == 0 && cfg.Auth.AdminEmail != "" {
		cfg.Mail.To = []string{cfg.Auth.AdminEmail}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.AdminEmail == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL is required"))
	}
	if !strings.HasPrefix(c.Auth.AdminPasswordHash, "$2") {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH must be a bcrypt hash"))
	}
	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength))
	}
	if c.Auth.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}

	if !slices.Contains(logFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be one of %v", c.LogFormat, logFormats))
	}

	if !slices.Contains(cacheDrivers, c.Cache.Driver) {
		errs = append(errs, fmt.Errorf("CACHE_DRIVER %q must be one of %v", c.Cache.Driver, cacheDrivers))
	}
	switch c.Cache.Driver {
	case "sqlite", "postgres":
		if c.Cache.DSN == "" {
			errs = append(errs, fmt.Errorf("CACHE_DSN is required for driver %s", c.Cache.Driver))
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("CACHE_REDIS_ADDR is required for driver redis"))
		}
	}

	if !slices.Contains(mailDrivers, c.Mail.Driver) {
		errs = append(errs, fmt.Errorf("MAIL_DRIVER %q must be one of %v", c.Mail.Driver, mailDrivers))
	}
	if c.Mail.Driver == "sendgrid" && c.Mail.SendGridAPIKey == "" {
		errs = append(errs, errors.New("MAIL_SENDGRID_API_KEY is required for driver sendgrid"))
	}
	if _, err := mail.ParseAddress(c.Mail.From); err != nil {
		errs = append(errs, fmt.Errorf("MAIL_FROM: %w", err))
	}
	if _, err := c.Mail.Recipients(); err != nil {
		errs = append(errs, err)
	}

	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("RATELIMIT_IP_LIMIT and RATELIMIT_IP_WINDOW must be positive"))
	}

	return errors.Join(errs...)
}

// Sender parses the From address.
func (m MailConfig) Sender() (mail.Address, error) {
	a, err := mail.ParseAddress(m.From)
	if err != nil {
		return mail.Address{}, fmt.Errorf("MAIL_FROM: %w", err)
	}
	return *a, nil
}

// Recipients parses the To addresses.
func (m MailConfig) Recipients() ([]mail.Address, error) {
	if len(m.To) == 0 {
		return nil, errors.New("MAIL_TO is required (defaults to ADMIN_EMAIL)")
	}
	out := make([]mail.Address, 0, len(m.To))
	for _, s := range m.To {
		a, err := mail.ParseAddress(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("MAIL_TO %q: %w", s, err)
		}
		out = append(out, *a)
	}
	return out, nil
}
