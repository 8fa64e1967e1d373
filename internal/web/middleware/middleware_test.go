package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/promomod/internal/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAPIKeyAuth(t *testing.T) {
	cfg := &config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1", "k2"}}

	tests := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"missing", nil, http.StatusUnauthorized},
		{"invalid", http.Header{"X-Api-Key": {"nope"}}, http.StatusForbidden},
		{"x-api-key", http.Header{"X-Api-Key": {"k2"}}, http.StatusNoContent},
		{"bearer", http.Header{"Authorization": {"Bearer k1"}}, http.StatusNoContent},
		{"bearer lowercase", http.Header{"Authorization": {"bearer k1"}}, http.StatusNoContent},
		{"basic is ignored", http.Header{"Authorization": {"Basic k1"}}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/reload", nil)
			for k, v := range tt.header {
				req.Header[k] = v
			}
			rec := httptest.NewRecorder()
			APIKeyAuth(cfg)(okHandler).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	rec := httptest.NewRecorder()
	APIKeyAuth(&config.SecurityConfig{})(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestTrustedRealIP(t *testing.T) {
	mw := TrustedRealIP([]string{"10.0.0.0/8", "192.168.1.5", "not-an-ip"})

	tests := []struct {
		name   string
		remote string
		header http.Header
		want   string
	}{
		{"trusted x-real-ip", "10.1.2.3:5000", http.Header{"X-Real-Ip": {"203.0.113.7"}}, "203.0.113.7"},
		{"trusted single address", "192.168.1.5:80", http.Header{"X-Forwarded-For": {"198.51.100.1, 10.0.0.1"}}, "198.51.100.1"},
		{"untrusted proxy", "203.0.113.9:1000", http.Header{"X-Real-Ip": {"1.2.3.4"}}, "203.0.113.9:1000"},
		{"invalid header kept", "10.1.2.3:5000", http.Header{"X-Real-Ip": {"garbage"}}, "10.1.2.3:5000"},
		{"no header", "10.1.2.3:5000", nil, "10.1.2.3:5000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header[k] = v
			}

			var got string
			mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			})).ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogger_CapturesStatus(t *testing.T) {
	var captured *responseWriter
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = w.(*responseWriter)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if captured.status != http.StatusTeapot || captured.bytes != 5 {
		t.Errorf("captured status=%d bytes=%d, want 418 and 5", captured.status, captured.bytes)
	}
}
