package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/dmarket/dmarket-api/internal/auth"
	rl "github.com/dmarket/dmarket-api/internal/http/rate_limiter"
	"github.com/dmarket/dmarket-api/internal/models"
	"github.com/dmarket/dmarket-api/internal/repo"
)

type contextKey string

const currentUserKey = contextKey("current_user")

var (
	verifier auth.TokenVerifier
	userRepo repo.UserRepository
	sessions auth.SessionStore
)

func SetVerifier(v auth.TokenVerifier) {
	verifier = v
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetSessionStore(s auth.SessionStore) {
	sessions = s
}

// RequireAuth validates the bearer token (or, failing that, the session's
// stored access token), provisions the user row on first sight, and puts
// the user on the request context.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := tokenFromRequest(r)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			log.WithError(err).Debug("token verification failed")
			writeMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			writeMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := getOrCreateUser(sub, claims)
		if err != nil {
			log.WithError(err).WithField("user_id", sub).Error("could not load user")
			writeMessage(w, http.StatusInternalServerError, "could not load user")
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows the request through only for admin users. It must run
// after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r)
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdmin {
			log.WithField("user_id", user.UserID).Warn("admin access denied")
			writeMessage(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit applies a per-client token bucket.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			writeMessage(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user placed by RequireAuth.
func UserFromContext(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(currentUserKey).(models.User)
	return user, ok
}

func tokenFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		// No header: fall back to the access token held by the session.
		cookie, err := r.Cookie(auth.SessionCookieName)
		if err != nil {
			return "", errors.New("Authorization header is expected")
		}
		sess, err := sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			return "", errors.New("Authorization header is expected")
		}
		return sess.AccessToken, nil
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("Authorization header must be Bearer token")
	}
	return parts[1], nil
}

func getOrCreateUser(sub string, claims map[string]any) (models.User, error) {
	user, err := userRepo.GetByID(sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return models.User{}, err
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	user = models.User{UserID: sub, Email: email, Name: name}
	log.WithField("user_id", sub).Info("provisioning new user")
	return userRepo.Create(user)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
