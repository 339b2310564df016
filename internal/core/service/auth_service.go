package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
	"github.com/panaderia/bread-orders/internal/pkg/password"
)

const tokenBytes = 32

// AuthService implements login, logout and session lookup.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	log      zerolog.Logger
	newToken func() (string, error)
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log, newToken: randomToken}
}

// Login verifies the credentials and opens a session. Unknown users and wrong
// passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, username, pass string) (*domain.Session, error) {
	if username == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Info().Str("username", username).Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !password.Verify(pass, user.PasswordHash) {
		s.log.Info().Str("username", username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	sess := domain.Session{Token: token, Username: user.Username, Role: user.Role}
	s.sessions.Put(sess)

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")
	return &sess, nil
}

// Logout drops the session. Unknown tokens are ignored.
func (s *AuthService) Logout(_ context.Context, token string) {
	if token == "" {
		return
	}
	if sess, ok := s.sessions.Get(token); ok {
		s.log.Info().Str("username", sess.Username).Msg("user logged out")
	}
	s.sessions.Delete(token)
}

func (s *AuthService) CurrentUser(_ context.Context, token string) (*domain.Session, bool) {
	if token == "" {
		return nil, false
	}
	sess, ok := s.sessions.Get(token)
	if !ok {
		return nil, false
	}
	return &sess, true
}

func randomToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
