package auth

import (
	"context"
	"net/url"
	"strings"
	"testing"
)

func TestAuthorizeURL(t *testing.T) {
	c := NewAuth0Client("tenant.example.auth0.com", "client-id", "secret",
		"https://api.example.com", "http://localhost:8080/callback")

	raw := c.AuthorizeURL("xyz")
	if !strings.HasPrefix(raw, "https://tenant.example.auth0.com/authorize?") {
		t.Fatalf("unexpected authorize URL %q", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("error parsing URL: %v", err)
	}
	q := u.Query()

	if q.Get("response_type") != "code" {
		t.Errorf("expected response_type=code, got %q", q.Get("response_type"))
	}
	if q.Get("client_id") != "client-id" {
		t.Errorf("expected client_id, got %q", q.Get("client_id"))
	}
	if q.Get("redirect_uri") != "http://localhost:8080/callback" {
		t.Errorf("unexpected redirect_uri %q", q.Get("redirect_uri"))
	}
	if q.Get("scope") != "openid profile email" {
		t.Errorf("unexpected scope %q", q.Get("scope"))
	}
	if q.Get("state") != "xyz" {
		t.Errorf("unexpected state %q", q.Get("state"))
	}
}

func TestLogoutURL(t *testing.T) {
	c := NewAuth0Client("tenant.example.auth0.com", "client-id", "secret",
		"https://api.example.com", "http://localhost:8080/callback")

	raw := c.LogoutURL("http://localhost:8080/")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("error parsing URL: %v", err)
	}
	if u.Path != "/v2/logout" {
		t.Errorf("unexpected path %q", u.Path)
	}
	q := u.Query()
	if q.Get("returnTo") != "http://localhost:8080/" {
		t.Errorf("unexpected returnTo %q", q.Get("returnTo"))
	}
	if q.Get("client_id") != "client-id" {
		t.Errorf("unexpected client_id %q", q.Get("client_id"))
	}
}

func TestInMemorySessionStore(t *testing.T) {
	s := NewInMemorySessionStore()
	ctx := context.Background()

	id, err := s.Create(ctx, Session{UserID: "auth0|u1", AccessToken: "tok"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a session id")
	}

	sess, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.UserID != "auth0|u1" || sess.AccessToken != "tok" {
		t.Errorf("unexpected session %+v", sess)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get(ctx, id); err != ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRSAKeyFromJWK(t *testing.T) {
	// AQAB is the usual 65537 exponent.
	key, err := rsaKeyFromJWK("3Tealc", "AQAB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.E != 65537 {
		t.Errorf("expected exponent 65537, got %d", key.E)
	}
	if key.N.Sign() <= 0 {
		t.Error("expected positive modulus")
	}

	if _, err := rsaKeyFromJWK("not base64!!", "AQAB"); err == nil {
		t.Error("expected error for invalid modulus encoding")
	}
}
