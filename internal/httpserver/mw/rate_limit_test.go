package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit(t *testing.T) {
	now := time.Date(2025, time.January, 25, 18, 0, 0, 0, time.UTC)
	h := RateLimit(RateLimitConfig{
		Burst:             2,
		RefillPerIPPerMin: 60,
		Now:               func() time.Time { return now },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	tests := []struct {
		name       string
		remoteAddr string
		advance    time.Duration
		wantStatus int
	}{
		{name: "first", remoteAddr: "10.0.0.1:1234", wantStatus: http.StatusOK},
		{name: "second", remoteAddr: "10.0.0.1:1234", wantStatus: http.StatusOK},
		{name: "bucket empty", remoteAddr: "10.0.0.1:1234", wantStatus: http.StatusTooManyRequests},
		{name: "other client", remoteAddr: "10.0.0.2:1234", wantStatus: http.StatusOK},
		{name: "refilled", remoteAddr: "10.0.0.1:1234", advance: time.Second, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		now = now.Add(tt.advance)
		rec := do(tt.remoteAddr)
		if rec.Code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.wantStatus)
		}
		if rec.Code == http.StatusTooManyRequests && rec.Header().Get("Retry-After") == "" {
			t.Errorf("%s: missing Retry-After header", tt.name)
		}
	}
}
