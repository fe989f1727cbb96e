package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/dmarket/dmarket-api/internal/auth"
	"github.com/dmarket/dmarket-api/internal/models"
	"github.com/dmarket/dmarket-api/internal/repo"
)

const stateCookieName = "auth_state"

// LoginHandler godoc
// @Summary Initiate login process
// @Description Redirects the user to the identity provider's login page.
// @Tags auth
// @Success 302 "Redirect to the identity provider"
// @Router /login [get]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	state, err := newState()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "could not start login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, auth0Client.AuthorizeURL(state), http.StatusFound)
}

// CallbackHandler godoc
// @Summary Identity provider callback
// @Description Handles the callback after user authentication: exchanges the code, fetches the profile, provisions the user and opens a session.
// @Tags auth
// @Success 302 "Redirect to /"
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /callback [get]
func CallbackHandler(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		writeMessage(w, http.StatusBadRequest, "invalid state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeMessage(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	token, err := auth0Client.Exchange(r.Context(), code)
	if err != nil {
		log.WithError(err).Error("OAuth error in callback")
		writeMessage(w, http.StatusInternalServerError, "OAuth authentication error")
		return
	}

	info, err := auth0Client.FetchUserinfo(r.Context(), token.AccessToken)
	if err != nil {
		log.WithError(err).Error("HTTP error during user info fetch")
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch user information")
		return
	}

	user, err := getOrCreateUser(info)
	if err != nil {
		log.WithError(err).WithField("user_id", info.Sub).Error("error creating user")
		writeMessage(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	sessionID, err := sessions.Create(r.Context(), auth.Session{
		UserID:      user.UserID,
		Email:       user.Email,
		Name:        user.Name,
		AccessToken: token.AccessToken,
	})
	if err != nil {
		log.WithError(err).Error("could not create session")
		writeMessage(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Path: "/", MaxAge: -1})

	http.Redirect(w, r, "/", http.StatusFound)
}

// LogoutHandler godoc
// @Summary Logout user
// @Description Clears the user session and redirects to the identity provider's logout endpoint.
// @Tags auth
// @Success 302 "Redirect to the identity provider"
// @Router /logout [get]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		if err := sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.WithError(err).Warn("could not delete session")
		}
	}
	http.SetCookie(w, &http.Cookie{Name: auth.SessionCookieName, Path: "/", MaxAge: -1})

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	returnTo := scheme + "://" + r.Host + "/"

	http.Redirect(w, r, auth0Client.LogoutURL(returnTo), http.StatusFound)
}

// SessionHandler godoc
// @Summary Get current session info
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResult
// @Failure 401 {object} SessionResult
// @Router /session [get]
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err == nil {
		if sess, err := sessions.Get(r.Context(), cookie.Value); err == nil {
			writeJSON(w, http.StatusOK, SessionResult{
				Authenticated: true,
				User: &SessionUser{
					UserID: sess.UserID,
					Email:  sess.Email,
					Name:   sess.Name,
				},
				AccessToken: sess.AccessToken,
			})
			return
		}
	}

	writeJSON(w, http.StatusUnauthorized, SessionResult{Authenticated: false, User: nil})
}

func getOrCreateUser(info auth.Userinfo) (models.User, error) {
	user, err := userRepo.GetByID(info.Sub)
	if err == nil {
		return user, nil
	}
	if err != repo.ErrUserNotFound {
		return models.User{}, err
	}

	log.WithField("user_id", info.Sub).Info("user not found, creating new user")
	return userRepo.Create(models.User{
		UserID: info.Sub,
		Email:  info.Email,
		Name:   info.Name,
	})
}

func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
