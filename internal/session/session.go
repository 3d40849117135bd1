// Package session implements the user registry and token-based login
// state backed by an external key-value store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RahmadZikry/geodump/internal/session/redisstore"
)

var (
	// ErrEmailTaken rejects a registration for an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoSession reports a missing or expired token.
	ErrNoSession = errors.New("no active session")
	// ErrMissingFields rejects a registration with blank required fields.
	ErrMissingFields = errors.New("name, email and password are required")
)

// User is the public current-user descriptor.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// storedUser additionally carries the password hash; it never leaves the
// store layer.
type storedUser struct {
	User
	PasswordHash []byte `json:"passwordHash"`
}

// DefaultTTL is how long an issued session token stays valid.
const DefaultTTL = 24 * time.Hour

type Store struct {
	cli *redisstore.Client
	ttl time.Duration
}

func NewStore(cli *redisstore.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cli: cli, ttl: ttl}
}

// Register creates a user; the first account of an email wins atomically.
func (s *Store) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return User{}, ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := storedUser{
		User: User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     email,
			Role:      "user",
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: hash,
	}
	body, err := json.Marshal(u)
	if err != nil {
		return User{}, fmt.Errorf("marshal user: %w", err)
	}

	ok, err := s.cli.SetNX(ctx, userKey(email), body, 0)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, fmt.Errorf("register %q: %w", email, ErrEmailTaken)
	}
	return u.User, nil
}

// Login verifies the credentials and issues a TTL'd session token.
func (s *Store) Login(ctx context.Context, email, password string) (User, string, error) {
	email = normalizeEmail(email)

	raw, err := s.cli.Get(ctx, userKey(email))
	if errors.Is(err, redisstore.ErrNil) {
		return User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return User{}, "", err
	}

	var u storedUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, "", fmt.Errorf("unmarshal user: %w", err)
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	body, err := json.Marshal(u.User)
	if err != nil {
		return User{}, "", fmt.Errorf("marshal session: %w", err)
	}
	if err := s.cli.Set(ctx, sessionKey(token), body, s.ttl); err != nil {
		return User{}, "", err
	}
	return u.User, token, nil
}

// Current resolves the token to its user descriptor.
func (s *Store) Current(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrNoSession
	}
	raw, err := s.cli.Get(ctx, sessionKey(token))
	if errors.Is(err, redisstore.ErrNil) {
		return User{}, ErrNoSession
	}
	if err != nil {
		return User{}, err
	}
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return User{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return u, nil
}

// Logout invalidates the token; logging out twice is harmless.
func (s *Store) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.cli.Del(ctx, sessionKey(token))
}

// Ping reports whether the backing store is reachable, for readiness.
func (s *Store) Ping(ctx context.Context) error {
	return s.cli.Ping(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userKey(email string) string    { return "geodump:user:" + email }
func sessionKey(token string) string { return "geodump:sess:" + token }
