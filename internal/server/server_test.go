package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnpath-be/internal/bootstrap"
	"learnpath-be/internal/config"
	"learnpath-be/internal/pkg/logger"
	"learnpath-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		App:   config.AppConfig{CorsAllowedOrigins: "*"},
		Ai:    config.AIConfig{AssessmentEvaluator: "deterministic"},
		Auth:  config.AuthConfig{JwtSecret: "server-test"},
		Cache: config.CacheConfig{TTL: time.Minute},
	}
	container, err := bootstrap.NewContainer(testutil.NewTestDB(t), cfg, logger.NewNopLogger(), &testutil.FakeProvider{})
	require.NoError(t, err)
	t.Cleanup(container.Close)
	return New(cfg, container)
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)

	res, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestServer_MetricsExposesCollectors(t *testing.T) {
	srv := newTestServer(t)

	res, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestServer_ProtectedRoutesNeedToken(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{"/api/paths", "/api/ai/sessions", "/api/ai/study-aids", "/api/ai/assessments"} {
		res, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, target)
	}
}

func TestServer_UnknownRouteIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	res, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
