package repo

import (
	"errors"

	"github.com/dmarket/dmarket-api/internal/models"
)

// UserRepository defines the interface for user data operations. Users come
// from the identity provider, keyed by the token subject.
type UserRepository interface {
	GetByID(userID string) (models.User, error)
	GetByEmail(email string) (models.User, error)
	GetAll() ([]models.User, error)
	Create(user models.User) (models.User, error)
	SetAdmin(userID string, isAdmin bool) error
}

// ErrUserNotFound is returned when no row matches the requested user.
var ErrUserNotFound = errors.New("user not found")
