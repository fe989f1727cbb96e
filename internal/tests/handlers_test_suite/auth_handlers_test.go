package handlers_test_suite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmarket/dmarket-api/internal/auth"
	handler "github.com/dmarket/dmarket-api/internal/http/handlers"
)

func TestLoginHandler_RedirectsToProvider(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/login", "", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", w.Code)
	}

	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "https://tenant.example.auth0.com/authorize?") {
		t.Errorf("unexpected redirect target %q", location)
	}
	if !strings.Contains(location, "client_id=client-id") {
		t.Errorf("expected client_id in redirect, got %q", location)
	}
	if !strings.Contains(location, "state=") {
		t.Errorf("expected state in redirect, got %q", location)
	}

	stateCookie := ""
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_state" {
			stateCookie = c.Value
		}
	}
	if stateCookie == "" {
		t.Error("expected auth_state cookie to be set")
	}
	if !strings.Contains(location, "state="+stateCookie) {
		t.Error("expected redirect state to match the auth_state cookie")
	}
}

func TestCallbackHandler_InvalidState(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=tampered", nil)
	req.AddCookie(&http.Cookie{Name: "auth_state", Value: "expected"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	if got := decodeMessage(t, w); got != "invalid state" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestLogoutHandler_ClearsSessionAndRedirects(t *testing.T) {
	r := newTestRouter()

	sessionID, err := sessions.Create(context.Background(), auth.Session{
		UserID:      "auth0|alice",
		Email:       "alice@example.com",
		AccessToken: aliceToken,
	})
	if err != nil {
		t.Fatalf("error creating session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: sessionID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 Found, got %d", w.Code)
	}
	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "https://tenant.example.auth0.com/v2/logout?") {
		t.Errorf("unexpected redirect target %q", location)
	}

	if _, err := sessions.Get(context.Background(), sessionID); err != auth.ErrSessionNotFound {
		t.Errorf("expected session to be deleted, got %v", err)
	}
}

func TestRequireAuth_SessionFallback(t *testing.T) {
	r := newTestRouter()

	sessionID, err := sessions.Create(context.Background(), auth.Session{
		UserID:      "auth0|alice",
		Email:       "alice@example.com",
		AccessToken: aliceToken,
	})
	if err != nil {
		t.Fatalf("error creating session: %v", err)
	}

	// No Authorization header; the session's access token is used instead.
	req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: sessionID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK via session fallback, got %d", w.Code)
	}

	var resp handler.AdminCheckResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.IsAdmin {
		t.Error("expected is_admin false")
	}
}

func TestSessionHandler(t *testing.T) {
	r := newTestRouter()

	// Without a session cookie the handler reports unauthenticated.
	w := doJSON(r, http.MethodGet, "/session", adminToken, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", w.Code)
	}
	var resp handler.SessionResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Authenticated || resp.User != nil {
		t.Errorf("expected unauthenticated empty session, got %+v", resp)
	}

	sessionID, err := sessions.Create(context.Background(), auth.Session{
		UserID:      "auth0|admin",
		Email:       "admin@example.com",
		Name:        "Admin",
		AccessToken: adminToken,
	})
	if err != nil {
		t.Fatalf("error creating session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: sessionID})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Authenticated {
		t.Error("expected authenticated true")
	}
	if resp.User == nil || resp.User.UserID != "auth0|admin" {
		t.Errorf("unexpected session user %+v", resp.User)
	}
	if resp.AccessToken != adminToken {
		t.Errorf("expected session access token, got %q", resp.AccessToken)
	}
}
