package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
backend:
  base_url: "https://api.example.com/"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.RequestTimeoutSeconds)
	assert.Equal(t, 60, cfg.Payment.TimeoutSeconds)
	require.NotNil(t, cfg.Payment.MaxRetries)
	assert.Equal(t, 2, *cfg.Payment.MaxRetries)
	assert.Equal(t, 240, cfg.Server.WriteTimeoutSeconds)
	assert.Equal(t, 5, cfg.Polling.PaymentIntervalSeconds)
	assert.Equal(t, 24, cfg.Polling.PaymentMaxAttempts)
	assert.Equal(t, 2000, cfg.Polling.RedirectDelayMs)
	assert.Equal(t, "heli_session", cfg.Session.CookieName)
	assert.Equal(t, "0 */15 * * * *", cfg.Scheduler.RefreshCatalog)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.GetServerAddress())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "http://backend:5000")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("FIREBASE_CREDENTIALS_FILE", "/secrets/fcm.json")

	path := writeConfig(t, `
server:
  port: 8080
backend:
  base_url: "https://api.example.com"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Firebase.Enabled)
}

func TestLoad_ZeroRetriesIsKept(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
backend:
  base_url: "https://api.example.com"
payment:
  max_retries: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Payment.MaxRetries)
	assert.Equal(t, 0, *cfg.Payment.MaxRetries)
}

func TestLoad_TrustedProxies(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
backend:
  base_url: "https://api.example.com"
rate_limit:
  trusted_proxies: [" 10.0.0.0/8", "192.0.2.10"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.RateLimit.TrustedProxies)

	bad := writeConfig(t, `
server:
  port: 8080
backend:
  base_url: "https://api.example.com"
rate_limit:
  trusted_proxies: ["load-balancer"]
`)
	_, err = Load(bad)
	assert.ErrorContains(t, err, "invalid trusted proxy")
}

func TestParseProxy(t *testing.T) {
	p, err := ParseProxy("10.1.2.3/8")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/8", p.String())

	p, err = ParseProxy("192.0.2.10")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10/32", p.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"Missing port", Config{Backend: BackendConfig{BaseURL: "http://x"}}},
		{"Missing backend", Config{Server: ServerConfig{Port: 80}}},
		{"Relative backend URL", Config{Server: ServerConfig{Port: 80}, Backend: BackendConfig{BaseURL: "/api"}}},
		{"Negative retries", Config{
			Server:  ServerConfig{Port: 80},
			Backend: BackendConfig{BaseURL: "http://x"},
			Payment: PaymentConfig{MaxRetries: intPtr(-1)},
		}},
		{"Firebase without credentials", Config{
			Server:   ServerConfig{Port: 80},
			Backend:  BackendConfig{BaseURL: "http://x"},
			Firebase: FirebaseConfig{Enabled: true},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel("auth.login"))
	assert.Equal(t, SecurityUser, GetSecurityLevel("payment.negotiated"))
	assert.Equal(t, SecurityAdmin, GetSecurityLevel("negotiation.respond"))
	assert.Equal(t, SecurityAdmin, GetSecurityLevel("no.such.route"))
}
