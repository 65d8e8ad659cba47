package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/wfdscore/internal/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"wfd.example.com", "*.lan"}, logger.New("error", false))(okHandler())

	tests := []struct {
		host string
		want int
	}{
		{host: "wfd.example.com", want: http.StatusOK},
		{host: "WFD.example.com:8080", want: http.StatusOK},
		{host: "scorer.lan", want: http.StatusOK},
		{host: "evil.example.com", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/reload", nil)
		r.Host = tt.host
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		if rec.Code != tt.want {
			t.Errorf("Host %q: status = %d, want %d", tt.host, rec.Code, tt.want)
		}
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	log := logger.New("error", false)

	t.Run("empty list passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AllowOnlyCIDRS(nil, false, log)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("proxy header honoured when trusted", func(t *testing.T) {
		h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, true, log)(okHandler())
		r := httptest.NewRequest(http.MethodGet, "/status", nil)
		r.Header.Set("X-Forwarded-For", "10.1.1.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("proxy header ignored when untrusted", func(t *testing.T) {
		h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, false, log)(okHandler())
		r := httptest.NewRequest(http.MethodGet, "/status", nil)
		r.Header.Set("X-Forwarded-For", "10.1.1.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host    string
		pattern string
		want    bool
	}{
		{host: "wfd.example.com", pattern: "wfd.example.com", want: true},
		{host: "wfd.example.com", pattern: "*.example.com", want: true},
		{host: "example.org", pattern: "*.example.com", want: false},
		{host: "other.example.com", pattern: "wfd.example.com", want: false},
	}

	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}
