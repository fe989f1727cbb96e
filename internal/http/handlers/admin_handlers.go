package handlers

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/dmarket/dmarket-api/internal/auth"
	mw "github.com/dmarket/dmarket-api/internal/http/middleware"
	"github.com/dmarket/dmarket-api/internal/repo"
)

// SetAdminHandler godoc
// @Summary Set a user as admin
// @Description Set a user as an admin by email. Only current admins can set new ones.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AdminSetRequest true "Email of the user to promote"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /admin/set [post]
func SetAdminHandler(w http.ResponseWriter, r *http.Request) {
	var req AdminSetRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "could not fetch user")
		return
	}

	if err := userRepo.SetAdmin(user.UserID, true); err != nil {
		log.WithError(err).WithField("user_id", user.UserID).Error("could not set admin flag")
		writeMessage(w, http.StatusInternalServerError, "could not update user")
		return
	}

	writeMessage(w, http.StatusOK, "User set as admin successfully")
}

// CheckAdminHandler godoc
// @Summary Check if the caller is an admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AdminCheckResult
// @Failure 401 {object} MessageResponse
// @Router /admin/check [get]
func CheckAdminHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := mw.UserFromContext(r)
	writeJSON(w, http.StatusOK, AdminCheckResult{IsAdmin: user.IsAdmin})
}

// ListUsersHandler godoc
// @Summary Get all users info
// @Description Retrieves information about all users. Admin access required. The caller's entry carries its session access token.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UsersResult
// @Failure 401 {object} MessageResponse
// @Failure 403 {object} MessageResponse
// @Router /admin/users [get]
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.GetAll()
	if err != nil {
		log.WithError(err).Error("could not fetch users")
		writeMessage(w, http.StatusInternalServerError, "could not fetch users")
		return
	}

	caller, _ := mw.UserFromContext(r)
	callerToken := sessionAccessToken(r)

	result := UsersResult{Users: make([]UserInfo, len(users))}
	for i, u := range users {
		info := UserInfo{
			UserID:  u.UserID,
			Email:   u.Email,
			Name:    u.Name,
			IsAdmin: u.IsAdmin,
		}
		if u.UserID == caller.UserID && callerToken != "" {
			token := callerToken
			info.AccessToken = &token
		}
		result.Users[i] = info
	}

	writeJSON(w, http.StatusOK, result)
}

func sessionAccessToken(r *http.Request) string {
	cookie, err := r.Cookie(auth.SessionCookieName)
	if err != nil {
		return ""
	}
	sess, err := sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		return ""
	}
	return sess.AccessToken
}
