package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/propflow/pkg/propflowsdk"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Issuer:               "https://auth.propflow.test",
		NumKeys:              1,
		DBDriver:             "sqlite",
		DatabaseFile:         filepath.Join(dir, "propflow.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		BootstrapToken:       "boot-secret",
		PublicBaseURL:        "https://app.propflow.test",
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		HousekeepingSchedule: "@hourly",
		ShutdownGracePeriod:  5 * time.Second,
	}
}

func TestNewServesRoutes(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	raw, err := json.Marshal(propflowsdk.BootstrapRequest{
		AdminEmail:    "ops@propflow.test",
		AdminPassword: "hunter2hunter2",
		AdminFullName: "Olive Operator",
		CompanyName:   "PropFlow Ops",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/bootstrap", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Bootstrap-Token", "boot-secret")
	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.FileExists(t, app.cfg.PepperFile)
}

func TestNewRejectsUnknownPlanFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.PlanFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan catalogue")
}

func TestShutdownStopsServer(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	require.NoError(t, app.housekeepingService.Start())

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/livez")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, app.Shutdown())
}
