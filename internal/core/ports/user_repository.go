package ports

import (
	"context"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

// UserRepository defines persistence for the credential store.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update runs fn on every stored user and persists the result as one
	// read-modify-write. An error from fn aborts without writing.
	Update(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) ([]domain.User, error)
}
