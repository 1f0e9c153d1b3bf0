package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/HTTPArchive/tech-report-apis/v1/cdn"
	"github.com/HTTPArchive/tech-report-apis/v1/logger"
	"github.com/HTTPArchive/tech-report-apis/v1/metrics"
	"github.com/HTTPArchive/tech-report-apis/v1/query/mocks"
	"github.com/HTTPArchive/tech-report-apis/v1/store/memory"
	"github.com/HTTPArchive/tech-report-apis/v1/tracer"
)

func testConfig() Config {
	return Config{CacheMaxAge: DefaultCacheMaxAge}
}

func newFixtureServer(t *testing.T, cfg Config, deps Deps) *Server {
	t.Helper()
	store, err := memory.LoadFile("../../fixtures/techreport.json")
	require.NoError(t, err)
	deps.Store = store
	deps.Logger = logger.NewNop()
	return NewServer(cfg, deps)
}

func serve(s *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.HTTP.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newFixtureServer(t, testConfig(), Deps{})

	for _, target := range []string{"/", "/v1", "/v1/"} {
		rec := serve(s, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String(), target)
	}
}

func TestResponseHeaders(t *testing.T) {
	s := newFixtureServer(t, testConfig(), Deps{})

	rec := serve(s, http.MethodGet, "/v1/geos", nil)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=21600", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "*", rec.Header().Get("Timing-Allow-Origin"))
}

func TestEndpointSuccess(t *testing.T) {
	s := newFixtureServer(t, testConfig(), Deps{})

	rec := serve(s, http.MethodGet, "/v1/adoption?technology=Vue.js,React&geo=ALL&rank=ALL&start=latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Vue.js", body[0]["technology"])
	assert.Equal(t, "React", body[1]["technology"])
	assert.Equal(t, "2024-02-01", body[1]["date"])
	assert.Contains(t, body[1], "adoption")

	rec = serve(s, http.MethodGet, "/technologies?onlyname", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["React","Vue.js","WordPress"]`, rec.Body.String())
}

func TestEndpointEncodedValues(t *testing.T) {
	s := newFixtureServer(t, testConfig(), Deps{})

	rec := serve(s, http.MethodGet, "/v1/categories?onlyname&category=JavaScript%20frameworks,CMS", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["CMS","JavaScript frameworks"]`, rec.Body.String())
}

func TestEndpointValidationError(t *testing.T) {
	s := newFixtureServer(t, testConfig(), Deps{})

	rec := serve(s, http.MethodGet, "/v1/cwv?technology=React", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `[{"geo":"missing geo parameter"},{"rank":"missing rank parameter"}]`, rec.Body.String())
}

func TestEndpointStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	s := NewServer(testConfig(), Deps{Store: store, Logger: logger.NewNop()})

	rec := serve(s, http.MethodGet, "/v1/technologies", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"errors":[{"error":"Failed to fetch technologies data"}]}`, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	s := newFixtureServer(t, testConfig(), Deps{})

	rec := serve(s, http.MethodGet, "/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"errors":[{"error":"Not found"}]}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCORSPreflight(t *testing.T) {
	s := newFixtureServer(t, testConfig(), Deps{})

	rec := serve(s, http.MethodOptions, "/v1/adoption", http.Header{
		"Origin":                        {"https://httparchive.org"},
		"Access-Control-Request-Method": {"GET"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestSignedParams(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		s := newFixtureServer(t, testConfig(), Deps{})
		rec := serve(s, http.MethodGet, "/v1/cdn/signed-params", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "CDN signing configuration not available")
	})

	signer, err := cdn.NewSigner(cdn.Config{KeyName: "reports-sign-key", Base64Secret: "AAAAAAAAAAAAAAAAAAAAAA"})
	require.NoError(t, err)
	s := newFixtureServer(t, testConfig(), Deps{Signer: signer})

	t.Run("default prefix", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/v1/cdn/signed-params?expirationSeconds=60", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body signedParamsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, cdn.DefaultURLPrefix, body.URLPrefix)
		assert.Equal(t, "reports-sign-key", body.SignedParams.KeyName)
		assert.NotEmpty(t, body.SignedParams.Signature)

		expires, err := time.Parse(time.RFC3339, body.ExpiresAt)
		require.NoError(t, err)
		assert.Equal(t, body.SignedParams.Expires, expires.Unix())
	})

	t.Run("invalid prefix", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/v1/cdn/signed-params?urlPrefix=https://cdn.httparchive.org/reports", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"urlPrefix must end with a forward slash (/)"}`, rec.Body.String())
	})

	t.Run("invalid expiration", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/v1/cdn/signed-params?expirationSeconds=90000", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMetricsAndTracing(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test"})
	tr, err := tracer.NewClient(tracer.Config{ServiceName: "test"}, logger.NewNop())
	require.NoError(t, err)
	defer func() { _ = tr.Shutdown(context.Background()) }()

	s := newFixtureServer(t, testConfig(), Deps{Metrics: m, Tracer: tr})

	rec := serve(s, http.MethodGet, "/v1/geos", http.Header{
		"Traceparent": {"00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	serve(s, http.MethodGet, "/nope", nil)

	exposition := httptest.NewRecorder()
	m.Handler().ServeHTTP(exposition, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := exposition.Body.String()

	assert.True(t, strings.Contains(body, `http_requests_total{endpoint="/v1/geos",service="test",status="200"} 1`), body)
	assert.True(t, strings.Contains(body, `http_requests_total{endpoint="unmatched",service="test",status="404"} 1`), body)
	assert.True(t, strings.Contains(body, `queries_total{endpoint="geos",outcome="ok",service="test"} 1`), body)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitWindow = time.Minute
	s := newFixtureServer(t, cfg, Deps{})

	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/v1/ranks", nil).Code)

	rec := serve(s, http.MethodGet, "/v1/ranks", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"errors":[{"error":"Too many requests"}]}`, rec.Body.String())
}
