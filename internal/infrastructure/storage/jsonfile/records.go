package jsonfile

import (
	"context"
	"slices"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

const (
	OrdersFile = "orders.json"
	ItemsFile  = "items.json"
)

// RecordStore keeps a JSON array addressed by position.
type RecordStore[T any] struct {
	doc *Document[[]T]
}

func NewRecordStore[T any](s *Store, filename string) *RecordStore[T] {
	return &RecordStore[T]{
		doc: NewDocument(s, filename, func() []T { return []T{} }),
	}
}

// NewOrderRepository returns the store backing orders.json.
func NewOrderRepository(s *Store) *RecordStore[domain.Order] {
	return NewRecordStore[domain.Order](s, OrdersFile)
}

// NewItemRepository returns the store backing items.json.
func NewItemRepository(s *Store) *RecordStore[string] {
	return NewRecordStore[string](s, ItemsFile)
}

func (r *RecordStore[T]) List(ctx context.Context) ([]T, error) {
	records, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return normalize(records), nil
}

func (r *RecordStore[T]) Append(ctx context.Context, record T) ([]T, error) {
	return r.Update(ctx, func(records []T) ([]T, error) {
		return append(records, record), nil
	})
}

func (r *RecordStore[T]) ReplaceAt(ctx context.Context, index int, record T) ([]T, error) {
	return r.Update(ctx, func(records []T) ([]T, error) {
		if index < 0 || index >= len(records) {
			return nil, domain.ErrIndexOutOfRange
		}
		records[index] = record
		return records, nil
	})
}

func (r *RecordStore[T]) DeleteAt(ctx context.Context, index int) ([]T, error) {
	return r.Update(ctx, func(records []T) ([]T, error) {
		if index < 0 || index >= len(records) {
			return nil, domain.ErrIndexOutOfRange
		}
		return slices.Delete(records, index, index+1), nil
	})
}

func (r *RecordStore[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	records, err := r.doc.Update(ctx, func(records []T) ([]T, error) {
		next, err := fn(normalize(records))
		if err != nil {
			return nil, err
		}
		return normalize(next), nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Seed writes records when the file does not exist yet.
func (r *RecordStore[T]) Seed(records []T) (bool, error) {
	return r.doc.Seed(normalize(slices.Clone(records)))
}

// Shadowed reports whether the collection is currently kept in memory.
func (r *RecordStore[T]) Shadowed() bool {
	return r.doc.Shadowed()
}

// normalize turns a nil slice into an empty one so it encodes as [].
func normalize[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
