package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "VENDORHUB"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv     = "VENDORHUB_APP_ENV"
	EnvAPIBaseURL = "VENDORHUB_API_BASE_URL"
)

// Session storage backends selectable via VENDORHUB_SESSION_BACKEND.
const (
	SessionBackendFile      = "file"
	SessionBackendEncrypted = "encrypted"
	SessionBackendSQLite    = "sqlite"
	SessionBackendRedis     = "redis"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
}

// Load reads configuration from the environment, picking up a local .env
// file first when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Session.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"VENDORHUB_APP_ENV" default:"dev"`
	LogLevel string `envconfig:"VENDORHUB_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL string        `envconfig:"VENDORHUB_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"VENDORHUB_API_TIMEOUT" default:"30s"`
}

func (a APIConfig) validate() error {
	parsed, err := url.Parse(strings.TrimSpace(a.BaseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api base url %q is not an absolute URL", a.BaseURL)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	return nil
}

type SessionConfig struct {
	Backend string `envconfig:"VENDORHUB_SESSION_BACKEND" default:"file"`
	// Path is the storage location for the file, encrypted, and sqlite backends.
	Path string `envconfig:"VENDORHUB_SESSION_PATH" default:"vendorhub_session"`
	// EncryptionKeyHex is a hex-encoded 32-byte key, required by the encrypted backend.
	EncryptionKeyHex string `envconfig:"VENDORHUB_SESSION_KEY"`
}

func (s SessionConfig) validate() error {
	switch s.Backend {
	case SessionBackendFile, SessionBackendSQLite, SessionBackendRedis:
		return nil
	case SessionBackendEncrypted:
		if _, err := s.EncryptionKey(); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown session backend %q", s.Backend)
	}
}

// EncryptionKey decodes the configured hex key for the encrypted backend.
func (s SessionConfig) EncryptionKey() ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s.EncryptionKeyHex))
	if err != nil {
		return nil, fmt.Errorf("session encryption key must be hex encoded: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("session encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

type RedisConfig struct {
	URL          string        `envconfig:"VENDORHUB_REDIS_URL"`
	Address      string        `envconfig:"VENDORHUB_REDIS_ADDR"`
	Password     string        `envconfig:"VENDORHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENDORHUB_REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"VENDORHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENDORHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENDORHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}
