package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	httpapi "github.com/aussiebroadwan/propflow/internal/propflow/http"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
)

// RateLimitProfile overrides one httpx limiter profile. A zero Requests
// keeps the built-in default.
type RateLimitProfile struct {
	Requests int           `env:"REQUESTS"`
	Window   time.Duration `env:"WINDOW" envDefault:"1m"`
	Burst    int           `env:"BURST"`
}

func (p RateLimitProfile) config() httpx.RateLimitConfig {
	if p.Requests <= 0 {
		return httpx.RateLimitConfig{}
	}
	burst := p.Burst
	if burst <= 0 {
		burst = p.Requests
	}
	return httpx.RateLimitConfig{RequestsPerWindow: p.Requests, Window: p.Window, Burst: burst}
}

type Config struct {
	Issuer     string        `env:"PROPFLOW_ISSUER" envDefault:"propflow"`
	Audience   []string      `env:"PROPFLOW_AUDIENCE" envSeparator:","`
	NumKeys    int           `env:"PROPFLOW_NUM_KEYS" envDefault:"3"`
	SessionTTL time.Duration `env:"PROPFLOW_SESSION_TTL" envDefault:"30m"`

	DBDriver     string `env:"PROPFLOW_DB_DRIVER" envDefault:"sqlite"` // sqlite or postgres
	DatabaseFile string `env:"PROPFLOW_DATABASE_FILE" envDefault:"propflow.db"`
	DatabaseURL  string `env:"PROPFLOW_DATABASE_URL"` // postgres DSN
	PepperFile   string `env:"PROPFLOW_PEPPER_FILE" envDefault:"pepper"`

	BootstrapToken string `env:"PROPFLOW_BOOTSTRAP_TOKEN"`
	PublicBaseURL  string `env:"PROPFLOW_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	PlanFile       string `env:"PROPFLOW_PLAN_FILE"` // empty uses the built-in catalogue

	SendGridAPIKey string `env:"PROPFLOW_SENDGRID_API_KEY"`
	MailFrom       string `env:"PROPFLOW_MAIL_FROM" envDefault:"no-reply@propflow.local"`
	MailFromName   string `env:"PROPFLOW_MAIL_FROM_NAME" envDefault:"PropFlow"`

	OTelEndpoint string `env:"PROPFLOW_OTEL_ENDPOINT"`

	Env                 string        `env:"PROPFLOW_ENV" envDefault:"dev"`
	LogLevel            string        `env:"PROPFLOW_LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"PROPFLOW_LOG_FORMAT" envDefault:"json"`
	Port                int           `env:"PROPFLOW_PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"PROPFLOW_SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	HousekeepingSchedule string        `env:"PROPFLOW_HOUSEKEEPING_SCHEDULE" envDefault:"@hourly"`
	ExpiredRetention     time.Duration `env:"PROPFLOW_EXPIRED_RETENTION" envDefault:"720h"`

	StrictLimit   RateLimitProfile `envPrefix:"PROPFLOW_RATE_STRICT_"`
	ModerateLimit RateLimitProfile `envPrefix:"PROPFLOW_RATE_MODERATE_"`
	LenientLimit  RateLimitProfile `envPrefix:"PROPFLOW_RATE_LENIENT_"`
}

// LoadConfig reads the configuration from PROPFLOW_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			return fmt.Errorf("PROPFLOW_DATABASE_FILE is required for the sqlite driver")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("PROPFLOW_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported PROPFLOW_DB_DRIVER %q", c.DBDriver)
	}
	if c.Issuer == "" {
		return fmt.Errorf("PROPFLOW_ISSUER must not be empty")
	}
	if c.PublicBaseURL == "" {
		return fmt.Errorf("PROPFLOW_PUBLIC_BASE_URL must not be empty")
	}
	return nil
}

// RateLimits converts the configured profiles for the router.
func (c Config) RateLimits() httpapi.RateLimits {
	return httpapi.RateLimits{
		Strict:   c.StrictLimit.config(),
		Moderate: c.ModerateLimit.config(),
		Lenient:  c.LenientLimit.config(),
	}
}
