package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/dmarket/dmarket-api/internal/http/handlers"
)

func TestCheckAdminHandler(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/admin/check", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.AdminCheckResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.IsAdmin {
		t.Error("expected is_admin true for admin token")
	}

	w = doJSON(r, http.MethodGet, "/admin/check", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.IsAdmin {
		t.Error("expected is_admin false for regular user")
	}
}

func TestSetAdminHandler(t *testing.T) {
	r := newTestRouter()

	// Provision carol by letting her make an authenticated request.
	if w := doJSON(r, http.MethodGet, "/admin/check", carolToken, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK provisioning carol, got %d", w.Code)
	}

	w := doJSON(r, http.MethodPost, "/admin/set", adminToken, handler.AdminSetRequest{Email: "carol@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if got := decodeMessage(t, w); got != "User set as admin successfully" {
		t.Errorf("unexpected message %q", got)
	}

	// Carol is now an admin.
	checkW := doJSON(r, http.MethodGet, "/admin/check", carolToken, nil)
	var resp handler.AdminCheckResult
	if err := json.NewDecoder(checkW.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.IsAdmin {
		t.Error("expected carol to be an admin after /admin/set")
	}
}

func TestSetAdminHandler_Forbidden(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/admin/set", aliceToken, handler.AdminSetRequest{Email: "bob@example.com"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d", w.Code)
	}
}

func TestSetAdminHandler_UserNotFound(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/admin/set", adminToken, handler.AdminSetRequest{Email: "nobody@example.com"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 Not Found, got %d", w.Code)
	}
	if got := decodeMessage(t, w); got != "User not found" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestSetAdminHandler_MissingEmail(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/admin/set", adminToken, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	if got := decodeMessage(t, w); got != "Email is required" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestListUsersHandler(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/admin/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.UsersResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	foundAdmin := false
	for _, u := range resp.Users {
		if u.UserID == "auth0|admin" {
			foundAdmin = true
			if !u.IsAdmin {
				t.Error("expected admin user flagged is_admin")
			}
		}
	}
	if !foundAdmin {
		t.Error("expected admin user in the listing")
	}
}

func TestListUsersHandler_Forbidden(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodGet, "/admin/users", aliceToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/admin/users", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized without token, got %d", w.Code)
	}
}
