package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/aussiebroadwan/propflow/internal/propflow/http"
	"github.com/aussiebroadwan/propflow/pkg/httpx"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "propflow", cfg.Issuer)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "propflow.db", cfg.DatabaseFile)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "@hourly", cfg.HousekeepingSchedule)
	assert.Equal(t, 30*24*time.Hour, cfg.ExpiredRetention)
	assert.Empty(t, cfg.BootstrapToken)
	assert.Equal(t, httpapi.RateLimits{}, cfg.RateLimits())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PROPFLOW_ISSUER", "https://auth.propflow.example")
	t.Setenv("PROPFLOW_AUDIENCE", "web,mobile")
	t.Setenv("PROPFLOW_DB_DRIVER", "postgres")
	t.Setenv("PROPFLOW_DATABASE_URL", "postgres://propflow@db/propflow?sslmode=disable")
	t.Setenv("PROPFLOW_PORT", "9090")
	t.Setenv("PROPFLOW_EXPIRED_RETENTION", "168h")
	t.Setenv("PROPFLOW_RATE_STRICT_REQUESTS", "2")
	t.Setenv("PROPFLOW_RATE_STRICT_WINDOW", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://auth.propflow.example", cfg.Issuer)
	assert.Equal(t, []string{"web", "mobile"}, cfg.Audience)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.ExpiredRetention)

	limits := cfg.RateLimits()
	assert.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 2, Window: 30 * time.Second, Burst: 2}, limits.Strict)
	assert.Equal(t, httpx.RateLimitConfig{}, limits.Moderate)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"PROPFLOW_DB_DRIVER": "mysql"}},
		{"postgres without url", map[string]string{"PROPFLOW_DB_DRIVER": "postgres"}},
		{"bad port", map[string]string{"PROPFLOW_PORT": "eighty"}},
		{"bad duration", map[string]string{"PROPFLOW_SESSION_TTL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
