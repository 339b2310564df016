package ports

import (
	"context"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

// OrderInput carries the client-supplied fields of an order.
type OrderInput struct {
	Item string
	Qty  int
}

// OrderService defines the use cases on the shared order list.
type OrderService interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	CreateOrder(ctx context.Context, in OrderInput) ([]domain.Order, error)
	ReplaceOrder(ctx context.Context, index int, in OrderInput) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, index int) ([]domain.Order, error)
	Summary(ctx context.Context) (*domain.Summary, error)
}
