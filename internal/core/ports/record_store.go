package ports

import (
	"context"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

// RecordStore is a positionally addressed collection persisted as a whole.
// Every mutating call returns the complete collection after the change;
// callers treat it as the source of truth rather than diffing.
type RecordStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Append(ctx context.Context, record T) ([]T, error)
	// ReplaceAt and DeleteAt fail with domain.ErrIndexOutOfRange when index is
	// outside [0, len).
	ReplaceAt(ctx context.Context, index int, record T) ([]T, error)
	DeleteAt(ctx context.Context, index int) ([]T, error)
	// Update runs fn on the current collection and persists its result as one
	// read-modify-write. An error from fn aborts without writing.
	Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error)
}

// OrderRepository persists the shared order list.
type OrderRepository = RecordStore[domain.Order]

// ItemRepository persists the catalog of item names.
type ItemRepository = RecordStore[string]
