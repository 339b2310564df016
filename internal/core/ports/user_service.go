package ports

import (
	"context"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

// UpdateUserInput holds the optional changes to an account. Nil fields are
// left untouched.
type UpdateUserInput struct {
	Role     *string
	Password *string
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
	CreateUser(ctx context.Context, username, password, role string) ([]domain.PublicUser, error)
	UpdateUser(ctx context.Context, username string, in UpdateUserInput) ([]domain.PublicUser, error)
	DeleteUser(ctx context.Context, username string) error
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}
