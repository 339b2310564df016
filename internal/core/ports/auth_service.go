package ports

import (
	"context"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string)
	CurrentUser(ctx context.Context, token string) (*domain.Session, bool)
}
