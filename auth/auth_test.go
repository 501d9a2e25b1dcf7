package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	tok, err := iss.Issue("a@b.fr")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	email, err := iss.Parse(tok)
	if err != nil || email != "a@b.fr" {
		t.Fatalf("parse = %q, %v", email, err)
	}
	if _, err := NewIssuer("other", time.Hour).Parse(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken with wrong secret, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := iss.Issue("a@b.fr")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	iss.now = time.Now
	if _, err := iss.Parse(tok); err != ErrInvalidToken {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "pw") || CheckPassword(hash, "nope") {
		t.Fatalf("password check mismatch")
	}
}

func TestMiddleware(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	tok, _ := iss.Issue("a@b.fr")
	var got string
	h := iss.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserEmailFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/clients.php", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "a@b.fr" {
		t.Fatalf("expected email in context, got %q", got)
	}

	got = ""
	req = httptest.NewRequest(http.MethodGet, "/clients.php", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "" {
		t.Fatalf("invalid token should stay anonymous")
	}
}
