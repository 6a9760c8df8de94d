package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Invoice      InvoiceConfig
	RateLimit    RateLimitConfig
	Renderer     RendererConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JEWELBOOKS_APP_ENV" required:"true"`
	Port         string `envconfig:"JEWELBOOKS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"JEWELBOOKS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JEWELBOOKS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"JEWELBOOKS_DB_DSN"`
	Driver string `envconfig:"JEWELBOOKS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"JEWELBOOKS_DB_HOST"`
	LegacyPort     int    `envconfig:"JEWELBOOKS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JEWELBOOKS_DB_USER"`
	LegacyPassword string `envconfig:"JEWELBOOKS_DB_PASSWORD"`
	LegacyName     string `envconfig:"JEWELBOOKS_DB_NAME"`
	LegacySSLMode  string `envconfig:"JEWELBOOKS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JEWELBOOKS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JEWELBOOKS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JEWELBOOKS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JEWELBOOKS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JEWELBOOKS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"JEWELBOOKS_REDIS_ADDR"`
	Password     string        `envconfig:"JEWELBOOKS_REDIS_PASSWORD"`
	DB           int           `envconfig:"JEWELBOOKS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JEWELBOOKS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JEWELBOOKS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JEWELBOOKS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JEWELBOOKS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JEWELBOOKS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type InvoiceConfig struct {
	// DefaultPrefix is used when a vendor profile carries no prefix of its own.
	DefaultPrefix  string        `envconfig:"JEWELBOOKS_INVOICE_PREFIX" default:"INV"`
	IdempotencyTTL time.Duration `envconfig:"JEWELBOOKS_INVOICE_IDEMPOTENCY_TTL" default:"168h"`
}

// RateLimitConfig throttles the vendor API surface. A zero window or limit
// disables throttling.
type RateLimitConfig struct {
	Window      time.Duration `envconfig:"JEWELBOOKS_RATE_LIMIT_WINDOW" default:"1m"`
	VendorLimit int           `envconfig:"JEWELBOOKS_RATE_LIMIT_VENDOR_LIMIT" default:"120"`
}

// RendererConfig points at the external document-render service. An empty
// BaseURL leaves rendering disabled; generated invoices then carry no
// document reference.
type RendererConfig struct {
	BaseURL string        `envconfig:"JEWELBOOKS_RENDERER_BASE_URL"`
	APIKey  string        `envconfig:"JEWELBOOKS_RENDERER_API_KEY"`
	Timeout time.Duration `envconfig:"JEWELBOOKS_RENDERER_TIMEOUT" default:"15s"`
}

func (r RendererConfig) Enabled() bool {
	return strings.TrimSpace(r.BaseURL) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"JEWELBOOKS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
