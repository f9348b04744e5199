package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the portal configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Payment   PaymentConfig   `yaml:"payment"`
	Polling   PollingConfig   `yaml:"polling"`
	Session   SessionConfig   `yaml:"session"`
	Redis     RedisConfig     `yaml:"redis"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// BackendConfig points at the booking API that owns all business state
type BackendConfig struct {
	BaseURL               string `yaml:"base_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// PaymentConfig controls the negotiated payment retry policy
type PaymentConfig struct {
	TimeoutSeconds int  `yaml:"timeout_seconds"`
	MaxRetries     *int `yaml:"max_retries"` // nil means the default; 0 disables retries
	BackoffBaseMs  int  `yaml:"backoff_base_ms"`
}

// PollingConfig controls the fixed-interval polls
type PollingConfig struct {
	PaymentIntervalSeconds int `yaml:"payment_interval_seconds"`
	PaymentMaxAttempts     int `yaml:"payment_max_attempts"`
	RedirectDelayMs        int `yaml:"redirect_delay_ms"`
	ChatIntervalSeconds    int `yaml:"chat_interval_seconds"`
	UnreadIntervalSeconds  int `yaml:"unread_interval_seconds"`
}

// SessionConfig contains the token cookie settings
type SessionConfig struct {
	CookieName  string `yaml:"cookie_name"`
	Secure      bool   `yaml:"secure"`
	MaxAgeHours int    `yaml:"max_age_hours"`
}

// RedisConfig contains catalog cache settings. An empty Addr selects the in-memory cache.
type RedisConfig struct {
	Addr              string `yaml:"addr"`
	Password          string `yaml:"password"`
	DB                int    `yaml:"db"`
	CatalogTTLMinutes int    `yaml:"catalog_ttl_minutes"`
}

// FirebaseConfig contains FCM admin SDK settings
type FirebaseConfig struct {
	Enabled         bool   `yaml:"enabled"`
	CredentialsFile string `yaml:"credentials_file"`
}

// SendGridConfig contains contact form email settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	ToEmail   string `yaml:"to_email"`
}

// RateLimitConfig limits auth and contact form requests per client IP.
// X-Forwarded-For is only read from peers in TrustedProxies (IPs or CIDRs).
type RateLimitConfig struct {
	AuthPerMinute  int      `yaml:"auth_per_minute"`
	Burst          int      `yaml:"burst"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// CORSConfig lists the browser origins allowed to call the portal
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings. Disabled leaves the jobs to
// cmd/cronjob so replicas sharing one Redis do not all refresh the catalog.
type SchedulerConfig struct {
	Disabled         bool   `yaml:"disabled"`
	RefreshCatalog   string `yaml:"refresh_catalog"`
	SweepRateLimiter string `yaml:"sweep_rate_limiter"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Backend
	if val := os.Getenv("BACKEND_BASE_URL"); val != "" {
		c.Backend.BaseURL = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Firebase
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Firebase.CredentialsFile = val
		c.Firebase.Enabled = true
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("CONTACT_TO_EMAIL"); val != "" {
		c.SendGrid.ToEmail = val
	}

	// Rate limit
	if val := os.Getenv("TRUSTED_PROXIES"); val != "" {
		c.RateLimit.TrustedProxies = strings.Split(val, ",")
	}

	// CORS
	if val := os.Getenv("CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORS.AllowedOrigins = strings.Split(val, ",")
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Backend.BaseURL == "" {
		return errors.New("backend base URL is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend base URL: %q", c.Backend.BaseURL)
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")

	if c.Firebase.Enabled && c.Firebase.CredentialsFile == "" {
		return errors.New("firebase credentials file is required when firebase is enabled")
	}

	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		// Long enough for a negotiated payment with all retries (3 x 60 s + backoff)
		c.Server.WriteTimeoutSeconds = 240
	}
	if c.Backend.RequestTimeoutSeconds == 0 {
		c.Backend.RequestTimeoutSeconds = 30
	}

	// Payment defaults
	if c.Payment.TimeoutSeconds == 0 {
		c.Payment.TimeoutSeconds = 60
	}
	if c.Payment.MaxRetries == nil {
		retries := 2
		c.Payment.MaxRetries = &retries
	}
	if *c.Payment.MaxRetries < 0 {
		return fmt.Errorf("invalid payment max_retries: %d", *c.Payment.MaxRetries)
	}
	if c.Payment.BackoffBaseMs == 0 {
		c.Payment.BackoffBaseMs = 1000
	}

	// Polling defaults
	if c.Polling.PaymentIntervalSeconds == 0 {
		c.Polling.PaymentIntervalSeconds = 5
	}
	if c.Polling.PaymentMaxAttempts == 0 {
		c.Polling.PaymentMaxAttempts = 24
	}
	if c.Polling.RedirectDelayMs == 0 {
		c.Polling.RedirectDelayMs = 2000
	}
	if c.Polling.ChatIntervalSeconds == 0 {
		c.Polling.ChatIntervalSeconds = 10
	}
	if c.Polling.UnreadIntervalSeconds == 0 {
		c.Polling.UnreadIntervalSeconds = 30
	}

	// Session defaults
	if c.Session.CookieName == "" {
		c.Session.CookieName = "heli_session"
	}
	if c.Session.MaxAgeHours == 0 {
		c.Session.MaxAgeHours = 24
	}

	if c.Redis.CatalogTTLMinutes == 0 {
		c.Redis.CatalogTTLMinutes = 30
	}

	if c.RateLimit.AuthPerMinute == 0 {
		c.RateLimit.AuthPerMinute = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 3
	}
	for i, p := range c.RateLimit.TrustedProxies {
		p = strings.TrimSpace(p)
		if _, err := ParseProxy(p); err != nil {
			return fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		c.RateLimit.TrustedProxies[i] = p
	}

	if c.SendGrid.FromName == "" {
		c.SendGrid.FromName = "Helicopter Charters"
	}

	if c.Scheduler.RefreshCatalog == "" {
		c.Scheduler.RefreshCatalog = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.SweepRateLimiter == "" {
		c.Scheduler.SweepRateLimiter = "0 */5 * * * *"
	}

	return nil
}

// ParseProxy accepts a single IP or a CIDR block
func ParseProxy(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Seconds converts an integer seconds setting into a duration
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Millis converts an integer milliseconds setting into a duration
func Millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
