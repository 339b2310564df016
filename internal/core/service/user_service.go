package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
	"github.com/panaderia/bread-orders/internal/pkg/password"
)

// UserService implements admin-side account management.
type UserService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	iterations int
	log        zerolog.Logger
}

// NewUserService returns a UserService hashing new passwords with the given
// PBKDF2 iteration count (<= 0 uses the package default).
func NewUserService(users ports.UserRepository, sessions ports.SessionStore, iterations int, log zerolog.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, iterations: iterations, log: log}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (s *UserService) CreateUser(ctx context.Context, username, pass, role string) ([]domain.PublicUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || pass == "" {
		return nil, domain.NewValidationError("username and password are required")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("role must be admin or user")
	}

	hash, err := password.Hash(pass, nil, s.iterations)
	if err != nil {
		return nil, err
	}

	users, err := s.users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		if indexOfUser(users, username) >= 0 {
			return nil, domain.ErrUserExists
		}
		return append(users, domain.User{Username: username, Role: role, PasswordHash: hash}), nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", role).Msg("user created")
	return publicUsers(users), nil
}

func (s *UserService) UpdateUser(ctx context.Context, username string, in ports.UpdateUserInput) ([]domain.PublicUser, error) {
	if in.Role != nil && !domain.ValidRole(*in.Role) {
		return nil, domain.NewValidationError("role must be admin or user")
	}
	if in.Password != nil && *in.Password == "" {
		return nil, domain.NewValidationError("password cannot be empty")
	}

	var hash *domain.PasswordHash
	if in.Password != nil {
		h, err := password.Hash(*in.Password, nil, s.iterations)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	changed := false
	users, err := s.users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		i := indexOfUser(users, username)
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		if in.Role != nil && *in.Role != users[i].Role {
			if users[i].Role == domain.RoleAdmin && countAdmins(users) == 1 {
				return nil, domain.NewValidationError("cannot demote the last admin")
			}
			users[i].Role = *in.Role
			changed = true
		}
		if hash != nil {
			users[i].PasswordHash = *hash
			changed = true
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		n := s.sessions.DeleteUser(username)
		s.log.Info().Str("username", username).Int("sessions_revoked", n).Msg("user updated")
	}
	return publicUsers(users), nil
}

func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	_, err := s.users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		i := indexOfUser(users, username)
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		if users[i].Role == domain.RoleAdmin && countAdmins(users) == 1 {
			return nil, domain.NewValidationError("cannot delete the last admin")
		}
		return slices.Delete(users, i, i+1), nil
	})
	if err != nil {
		return err
	}

	n := s.sessions.DeleteUser(username)
	s.log.Info().Str("username", username).Int("sessions_revoked", n).Msg("user deleted")
	return nil
}

// EnsureAdmin creates the initial admin account when the credential store is
// empty and reports whether it did.
func (s *UserService) EnsureAdmin(ctx context.Context, username, pass string) (bool, error) {
	existing, err := s.users.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	hash, err := password.Hash(pass, nil, s.iterations)
	if err != nil {
		return false, err
	}

	created := false
	_, err = s.users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		if len(users) > 0 {
			return users, nil
		}
		created = true
		return []domain.User{{Username: username, Role: domain.RoleAdmin, PasswordHash: hash}}, nil
	})
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return created, nil
}

func indexOfUser(users []domain.User, username string) int {
	return slices.IndexFunc(users, func(u domain.User) bool { return u.Username == username })
}

func countAdmins(users []domain.User) int {
	n := 0
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			n++
		}
	}
	return n
}

func publicUsers(users []domain.User) []domain.PublicUser {
	out := make([]domain.PublicUser, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}
