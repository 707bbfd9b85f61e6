package app

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/clientdesk/pkg/httpx"
	"github.com/aussiebroadwan/clientdesk/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                 string        `env:"ENV" envDefault:"dev"`         // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`  // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"` // json, text
	Port                int           `env:"PORT" envDefault:"8080"`       // HTTP server port
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string `env:"DATABASE_FILE" envDefault:"clientdesk.db"` // sqlite only
	DatabaseURL    string `env:"DATABASE_URL"`                             // postgres only
	PepperFile     string `env:"PEPPER_FILE" envDefault:"pepper"`

	// JWTSecret signs session tokens. Left empty in dev, a random secret is
	// generated at startup and tokens do not survive a restart.
	JWTSecret string `env:"JWT_SECRET"`
	JWTExpiry Expiry `env:"JWT_EXPIRY" envDefault:"1h"`
	JWTIssuer string `env:"JWT_ISSUER" envDefault:"clientdesk"`

	// RedisURL switches rate limiting to shared Redis buckets.
	RedisURL string `env:"REDIS_URL"`

	// TrustedProxies lists the CIDRs or addresses of reverse proxies whose
	// X-Forwarded-For and X-Real-IP headers are honoured. Empty means rate
	// limits key on the connection peer.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	StrictLimit  httpx.RateLimitConfig `envPrefix:"RATELIMIT_STRICT_"`
	LenientLimit httpx.RateLimitConfig `envPrefix:"RATELIMIT_LENIENT_"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	// Limits keep the package defaults for any variable left unset.
	cfg := Config{
		StrictLimit:  httpx.StrictLimit,
		LenientLimit: httpx.LenientLimit,
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combinations env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not one of sqlite, postgres", c.DatabaseDriver))
	}

	switch {
	case c.JWTSecret == "" && !c.IsDevelopment():
		errs = append(errs, errors.New("JWT_SECRET is required outside dev"))
	case c.JWTSecret != "" && len(c.JWTSecret) < jwtx.MinSecretLength:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}

	for name, l := range map[string]httpx.RateLimitConfig{"STRICT": c.StrictLimit, "LENIENT": c.LenientLimit} {
		if l.RequestsPerWindow <= 0 || l.Window <= 0 || l.Burst <= 0 {
			errs = append(errs, fmt.Errorf("RATELIMIT_%s_* values must be positive", name))
		}
	}

	if _, err := c.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, fmt.Errorf("TRUSTED_PROXIES: %w", err))
	}

	return errors.Join(errs...)
}

// TrustedProxyPrefixes parses TrustedProxies.
func (c Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	return httpx.ParseTrustedProxies(c.TrustedProxies)
}

func (c Config) IsDevelopment() bool { return c.Env == "dev" }

// Expiry is a token lifetime. It accepts a Go duration ("90m", "1h"), a
// whole number of days ("7d") or a bare number of seconds ("3600").
type Expiry time.Duration

func (e Expiry) Duration() time.Duration { return time.Duration(e) }

func (e *Expiry) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))

	var d time.Duration
	switch {
	case s == "":
		return errors.New("empty expiry")
	case strings.HasSuffix(s, "d"):
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return fmt.Errorf("invalid expiry %q", s)
		}
		d = time.Duration(days) * 24 * time.Hour
	default:
		if secs, err := strconv.Atoi(s); err == nil {
			d = time.Duration(secs) * time.Second
			break
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid expiry %q", s)
		}
		d = parsed
	}

	if d <= 0 {
		return fmt.Errorf("expiry %q must be positive", s)
	}
	*e = Expiry(d)
	return nil
}
