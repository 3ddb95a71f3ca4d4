package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the client.
const EnvPrefix = "storefront"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App  AppConfig
	API  APIConfig
	Stub StubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig describes the remote storefront backend. The base URL is
// injected here rather than compiled in so staging and local stub
// backends are reachable without a rebuild.
type APIConfig struct {
	BaseURL     string        `envconfig:"STOREFRONT_API_BASE_URL" required:"true"`
	Timeout     time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"10s"`
	SessionFile string        `envconfig:"STOREFRONT_SESSION_FILE"`
}

func (a APIConfig) validate() error {
	parsed, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api base url must be http(s), got %q", a.BaseURL)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	return nil
}

// StubConfig configures the bundled in-memory backend used for local
// development and integration tests.
type StubConfig struct {
	Port      string        `envconfig:"STOREFRONT_STUB_PORT" default:"8089"`
	JWTSecret string        `envconfig:"STOREFRONT_STUB_JWT_SECRET" default:"stub-secret"`
	JWTIssuer string        `envconfig:"STOREFRONT_STUB_JWT_ISSUER" default:"storefront-stub"`
	TokenTTL  time.Duration `envconfig:"STOREFRONT_STUB_TOKEN_TTL" default:"24h"`
	SeedDemo  bool          `envconfig:"STOREFRONT_STUB_SEED_DEMO" default:"true"`
}
