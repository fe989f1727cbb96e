package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmarket/dmarket-api/internal/auth"
	api "github.com/dmarket/dmarket-api/internal/http"
	handler "github.com/dmarket/dmarket-api/internal/http/handlers"
	mw "github.com/dmarket/dmarket-api/internal/http/middleware"
	rl "github.com/dmarket/dmarket-api/internal/http/rate_limiter"
	"github.com/dmarket/dmarket-api/internal/models"
	"github.com/dmarket/dmarket-api/internal/repo"
)

// Tokens recognized by the stub verifier. Admin is pre-provisioned with the
// admin flag; the others are created on first authenticated request.
const (
	adminToken = "admin-token"
	aliceToken = "alice-token"
	bobToken   = "bob-token"
	carolToken = "carol-token"
)

var (
	productRepo *repo.InMemoryProductRepository
	userRepo    *repo.InMemoryUserRepository
	sessions    *auth.InMemorySessionStore
)

type stubVerifier struct {
	claims map[string]jwt.MapClaims
}

func (v *stubVerifier) Verify(token string) (jwt.MapClaims, error) {
	if c, ok := v.claims[token]; ok {
		return c, nil
	}
	return nil, errors.New("token is unverifiable")
}

func init() {
	productRepo = repo.NewInMemoryProductRepository()
	userRepo = repo.NewInMemoryUserRepository()
	sessions = auth.NewInMemorySessionStore()

	handler.SetProductRepo(productRepo)
	handler.SetUserRepo(userRepo)
	handler.SetSessionStore(sessions)
	handler.SetAuth0Client(auth.NewAuth0Client(
		"tenant.example.auth0.com", "client-id", "client-secret",
		"https://api.example.com", "http://localhost:8080/callback"))

	mw.SetUserRepo(userRepo)
	mw.SetSessionStore(sessions)
	mw.SetVerifier(&stubVerifier{claims: map[string]jwt.MapClaims{
		adminToken: {"sub": "auth0|admin", "email": "admin@example.com", "name": "Admin"},
		aliceToken: {"sub": "auth0|alice", "email": "alice@example.com", "name": "Alice"},
		bobToken:   {"sub": "auth0|bob", "email": "bob@example.com", "name": "Bob"},
		carolToken: {"sub": "auth0|carol", "email": "carol@example.com", "name": "Carol"},
	}})

	userRepo.Create(models.User{
		UserID:  "auth0|admin",
		Email:   "admin@example.com",
		Name:    "Admin",
		IsAdmin: true,
	})
}

// newTestRouter resets the rate limiter so long test runs never trip it.
func newTestRouter() http.Handler {
	rl.CleanupAllVisitors()
	return api.NewRouter()
}

func clearAllProducts() {
	productRepo.Clear()
}

func doJSON(r http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, token string, payload map[string]any) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products/create", token, payload)
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding message response: %v", err)
	}
	return resp.Message
}

func decodeProduct(t *testing.T, w *httptest.ResponseRecorder) handler.ProductResponse {
	t.Helper()
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding product response: %v", err)
	}
	return resp
}
