package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avkorz/diskhub/internal/auth"
)

var testSecret = []byte("test-secret")

func tokenEcho() (http.Handler, *string) {
	var seen string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.Token(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return h, &seen
}

func TestRequireTokenBearerHeader(t *testing.T) {
	inner, seen := tokenEcho()
	h := RequireToken(testSecret, slog.Default())(inner)

	req := httptest.NewRequest("GET", "/api/files", nil)
	req.Header.Set("Authorization", "Bearer my-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if *seen != "my-token" {
		t.Errorf("token = %q", *seen)
	}
}

func TestRequireTokenOAuthScheme(t *testing.T) {
	inner, seen := tokenEcho()
	h := RequireToken(testSecret, slog.Default())(inner)

	req := httptest.NewRequest("GET", "/api/files", nil)
	req.Header.Set("Authorization", "OAuth y0_abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *seen != "y0_abc" {
		t.Errorf("token = %q", *seen)
	}
}

func TestRequireTokenQueryParam(t *testing.T) {
	inner, seen := tokenEcho()
	h := RequireToken(testSecret, slog.Default())(inner)

	req := httptest.NewRequest("GET", "/ws?access_token=ws-token", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *seen != "ws-token" {
		t.Errorf("token = %q", *seen)
	}
}

func TestRequireTokenSessionCookie(t *testing.T) {
	session, err := auth.IssueSession(testSecret, "cookie-token", time.Hour)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	inner, seen := tokenEcho()
	h := RequireToken(testSecret, slog.Default())(inner)

	req := httptest.NewRequest("GET", "/api/files", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *seen != "cookie-token" {
		t.Errorf("token = %q", *seen)
	}
}

func TestRequireTokenMissing(t *testing.T) {
	inner, _ := tokenEcho()
	h := RequireToken(testSecret, slog.Default())(inner)

	req := httptest.NewRequest("GET", "/api/files", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireTokenTamperedCookie(t *testing.T) {
	inner, _ := tokenEcho()
	h := RequireToken(testSecret, slog.Default())(inner)

	req := httptest.NewRequest("GET", "/api/files", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage.jwt.value"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
