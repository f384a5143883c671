package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestHeadersDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	Headers(DefaultHeadersConfig())(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "https://cdn.jsdelivr.net")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "no HSTS over plain HTTP")
}

func TestHeadersHSTSOverTLS(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	r.TLS = &tls.ConnectionState{}
	w := httptest.NewRecorder()
	Headers(DefaultHeadersConfig())(ok).ServeHTTP(w, r)

	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
}

func TestHeadersSkipEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	Headers(HeadersConfig{XFrameOptions: "SAMEORIGIN"})(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	_, present := w.Header()["Content-Security-Policy"]
	assert.False(t, present)
}

func TestStaticCache(t *testing.T) {
	w := httptest.NewRecorder()
	StaticCache(3600)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/style.css", http.NoBody))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	StaticCache(0)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/style.css", http.NoBody))
	assert.Empty(t, w.Header().Get("Cache-Control"))
}
