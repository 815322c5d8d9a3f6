// Package session holds the admin gate: a single authenticated flag mirrored
// into a kv slot so it survives restarts. The password check is a cosmetic
// gate for the admin pages, not a security boundary.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/arshprem01/flower-eCommerce/internal/kvstore"
)

const (
	slotKey  = "admin_session"
	sentinel = "authenticated"
)

var ErrInvalidPassword = errors.New("invalid password")

type Service struct {
	store kvstore.Store

	// plaintext secret, or a bcrypt hash when the deployment sets one
	password     string
	passwordHash string

	mu            sync.RWMutex
	authenticated bool
}

// New resolves the flag from the persisted slot before returning, so the
// service is never observed in a loading state.
func New(ctx context.Context, store kvstore.Store, password, passwordHash string) (*Service, error) {
	s := &Service{store: store, password: password, passwordHash: passwordHash}

	v, err := store.Get(ctx, slotKey)
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return nil, fmt.Errorf("read session slot: %w", err)
	}
	s.authenticated = err == nil && v == sentinel

	return s, nil
}

func (s *Service) check(password string) bool {
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) == 1
}

// Login flips the flag on a correct password. Logging in while already
// authenticated is idempotent.
func (s *Service) Login(ctx context.Context, password string) error {
	if !s.check(password) {
		return ErrInvalidPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, slotKey, sentinel); err != nil {
		return fmt.Errorf("write session slot: %w", err)
	}
	s.authenticated = true
	return nil
}

// Logout clears the flag, idempotently.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, slotKey); err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}
	s.authenticated = false
	return nil
}

func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}
