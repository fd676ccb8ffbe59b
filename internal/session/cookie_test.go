package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWriteAndReadCookie(t *testing.T) {
	recorder := httptest.NewRecorder()
	expiresAt := time.Date(2025, 3, 24, 12, 0, 0, 0, time.UTC)
	WriteCookie(recorder, "token-value", expiresAt)

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != CookieName {
		t.Fatalf("name = %q, want %q", cookie.Name, CookieName)
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatal("expected HttpOnly and Secure cookie")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("samesite = %v, want lax", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Fatalf("path = %q, want /", cookie.Path)
	}
	if !cookie.Expires.Equal(expiresAt) {
		t.Fatalf("expires = %s, want %s", cookie.Expires, expiresAt)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	value, ok := ReadCookie(req)
	if !ok {
		t.Fatal("expected cookie to be read")
	}
	if value != "token-value" {
		t.Fatalf("value = %q, want %q", value, "token-value")
	}
}

func TestReadCookieMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := ReadCookie(req); ok {
		t.Fatal("expected no cookie")
	}
	if _, ok := ReadCookie(nil); ok {
		t.Fatal("expected no cookie for nil request")
	}
}

func TestClearCookieExpires(t *testing.T) {
	recorder := httptest.NewRecorder()
	ClearCookie(recorder)

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Fatalf("max age = %d, want -1", cookies[0].MaxAge)
	}
	if cookies[0].Value != "" {
		t.Fatalf("value = %q, want empty", cookies[0].Value)
	}
}
