package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"vatchecker/internal/vat/country"
	"vatchecker/internal/vat/policy"
	"vatchecker/internal/vat/providers/vies"
	"vatchecker/pkg/platform/strings"
)

// Config holds all application configuration.
type Config struct {
	Server   Server
	VAT      VAT
	VIES     VIES
	Database Database
	Redis    RedisConfig
	Kafka    Kafka
	Token    Token
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"VATCHECKER_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// VAT holds the operator settings of the validation engine.
type VAT struct {
	LiveMode         bool          `env:"VATCHECKER_LIVE_MODE" envDefault:"true"`
	OriginCountryID  int64         `env:"VATCHECKER_ORIGIN_COUNTRY" envDefault:"0"`
	NoTaxGroupID     int64         `env:"VATCHECKER_NO_TAX_GROUP" envDefault:"0"`
	EnabledCountries []string      `env:"VATCHECKER_ENABLED_COUNTRIES" envSeparator:","`
	OfflinePolicyRaw string        `env:"VATCHECKER_OFFLINE_POLICY" envDefault:"always-invalid"`
	FreshnessWindow  time.Duration `env:"VATCHECKER_FRESHNESS_WINDOW" envDefault:"24h"`

	// Set by Validate.
	OfflinePolicy policy.Policy
	Countries     []country.Code
}

// VIES configures the registry client.
type VIES struct {
	URL              string        `env:"VIES_URL" envDefault:"https://ec.europa.eu/taxation_customs/vies/services/checkVatService"`
	Timeout          time.Duration `env:"VIES_TIMEOUT" envDefault:"10s"`
	RateLimit        float64       `env:"VIES_RATE_LIMIT" envDefault:"10"`
	RateBurst        int           `env:"VIES_RATE_BURST" envDefault:"5"`
	BreakerThreshold int           `env:"VIES_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerCooldown  time.Duration `env:"VIES_BREAKER_COOLDOWN" envDefault:"30s"`
}

// Database configures Postgres. An empty URL selects in-memory stores.
type Database struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig configures the shared transient cache. An empty URL keeps the
// cache in process.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Kafka configures the audit stream. No brokers means audit goes to the log.
type Kafka struct {
	Brokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	AuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"vatchecker.validations"`
}

// Token configures the anti-forgery token of the ajax endpoint.
type Token struct {
	SigningKey string        `env:"TOKEN_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	TTL        time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints and resolves derived settings.
func (c *Config) Validate() error {
	var errs []error

	p, err := policy.Parse(c.VAT.OfflinePolicyRaw)
	if err != nil {
		errs = append(errs, err)
	}
	c.VAT.OfflinePolicy = p

	c.VAT.Countries = nil
	for _, code := range strings.DedupeAndTrimUpper(c.VAT.EnabledCountries) {
		if !country.IsEU(country.Code(code)) {
			errs = append(errs, fmt.Errorf("unknown country code %q in VATCHECKER_ENABLED_COUNTRIES", code))
			continue
		}
		c.VAT.Countries = append(c.VAT.Countries, country.Code(code))
	}
	if len(c.VAT.Countries) == 0 {
		c.VAT.Countries = country.DefaultEnabled()
	}

	if c.VAT.FreshnessWindow <= 0 {
		errs = append(errs, errors.New("VATCHECKER_FRESHNESS_WINDOW must be positive"))
	}
	if c.VAT.OriginCountryID < 0 || c.VAT.NoTaxGroupID < 0 {
		errs = append(errs, errors.New("VATCHECKER_ORIGIN_COUNTRY and VATCHECKER_NO_TAX_GROUP must not be negative"))
	}
	if c.VIES.Timeout <= 0 {
		errs = append(errs, errors.New("VIES_TIMEOUT must be positive"))
	}
	if c.VIES.RateLimit < 0 || c.VIES.RateBurst < 0 {
		errs = append(errs, errors.New("VIES_RATE_LIMIT and VIES_RATE_BURST must not be negative"))
	}
	if c.VIES.URL == "" {
		c.VIES.URL = vies.DefaultURL
	}
	switch c.Server.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Server.LogFormat))
	}
	if c.Token.SigningKey == "" {
		errs = append(errs, errors.New("TOKEN_SIGNING_KEY must not be empty"))
	}
	if c.Token.TTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	c.Kafka.Brokers = strings.DedupeAndTrim(c.Kafka.Brokers)

	return errors.Join(errs...)
}
