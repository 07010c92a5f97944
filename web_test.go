package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T, cfg *Config) http.Handler {
	t.Helper()

	if cfg == nil {
		cfg = testConfig()
	}
	hub := newHub(cfg, &stubCompleter{}, &stubSearcher{})
	errs := make(chan error, 8)
	t.Cleanup(func() { close(errs) })
	return newRouter(cfg, hub, errs)
}

func TestServeHealthCheck(t *testing.T) {
	mux := testRouter(t, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ok\n", w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestServeVersion(t *testing.T) {
	mux := testRouter(t, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "word-oracle v"+releaseVersion+"\n", w.Body.String())
}

func TestServeRobots(t *testing.T) {
	mux := testRouter(t, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Disallow: /")
}

func TestServeAppShellAtRoot(t *testing.T) {
	mux := testRouter(t, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Word Oracle")
}

func TestServeQR(t *testing.T) {
	mux := testRouter(t, nil)

	r := httptest.NewRequest(http.MethodGet, "/qr", nil)
	r.Host = "game.example.com"
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG magic bytes
	require.True(t, w.Body.Len() > 8)
	assert.Equal(t, "\x89PNG", w.Body.String()[:4])
}

func TestRouterPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.prefix = "/oracle"
	mux := testRouter(t, cfg)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/oracle/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:52000"
	assert.Equal(t, "10.0.0.1:52000", realIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9:52000", realIP(r))

	// CF header wins over X-Real-IP; garbage values are ignored.
	r.Header.Set("CF-Connecting-IP", "not an ip")
	assert.Equal(t, "10.0.0.1:52000", realIP(r))

	r.Header.Set("CF-Connecting-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7:52000", realIP(r))
}

func TestSecurityHeadersTLS(t *testing.T) {
	cfg := testConfig()

	w := httptest.NewRecorder()
	securityHeaders(cfg, w)
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	cfg.tlsCert = "cert.pem"
	cfg.tlsKey = "key.pem"
	w = httptest.NewRecorder()
	securityHeaders(cfg, w)
	if !strings.Contains(w.Header().Get("Strict-Transport-Security"), "max-age=") {
		t.Error("expected HSTS header when TLS is configured")
	}
}
