package handlers

import (
	"github.com/dmarket/dmarket-api/internal/auth"
	"github.com/dmarket/dmarket-api/internal/repo"
)

var (
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository

	sessions    auth.SessionStore
	auth0Client *auth.Auth0Client
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetSessionStore(s auth.SessionStore) {
	sessions = s
}

func SetAuth0Client(c *auth.Auth0Client) {
	auth0Client = c
}
