package repo

import (
	"sync"

	"github.com/dmarket/dmarket-api/internal/models"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: map[string]models.User{},
	}
}

func (r *InMemoryUserRepository) GetByID(userID string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		return u, nil
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByEmail(email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *InMemoryUserRepository) Create(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.UserID] = u
	return u, nil
}

func (r *InMemoryUserRepository) SetAdmin(userID string, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.IsAdmin = isAdmin
	r.users[userID] = u
	return nil
}
