package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "session"

const sessionKeyPrefix = "session:"

// ErrSessionNotFound is returned when no session matches the given id.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side state opened after a successful callback.
type Session struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

// SessionStore persists sessions keyed by an opaque id.
type SessionStore interface {
	Create(ctx context.Context, sess Session) (string, error)
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions in Redis with a TTL.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

// Create stores the session and returns its id.
func (s *RedisSessionStore) Create(ctx context.Context, sess Session) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads the session for the given id.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (Session, error) {
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
