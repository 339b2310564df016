package service

import (
	"context"
	"errors"
	"slices"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stand-ins for the ports.
// ---------------------------------------------------------------------------

type memRecords[T any] struct {
	records   []T
	updateErr error
	writes    int
}

func newMemRecords[T any](records ...T) *memRecords[T] {
	return &memRecords[T]{records: slices.Clone(records)}
}

func (m *memRecords[T]) List(_ context.Context) ([]T, error) {
	return slices.Clone(m.records), nil
}

func (m *memRecords[T]) Append(ctx context.Context, record T) ([]T, error) {
	return m.Update(ctx, func(records []T) ([]T, error) { return append(records, record), nil })
}

func (m *memRecords[T]) ReplaceAt(ctx context.Context, index int, record T) ([]T, error) {
	return m.Update(ctx, func(records []T) ([]T, error) {
		if index < 0 || index >= len(records) {
			return nil, domain.ErrIndexOutOfRange
		}
		records[index] = record
		return records, nil
	})
}

func (m *memRecords[T]) DeleteAt(ctx context.Context, index int) ([]T, error) {
	return m.Update(ctx, func(records []T) ([]T, error) {
		if index < 0 || index >= len(records) {
			return nil, domain.ErrIndexOutOfRange
		}
		return slices.Delete(records, index, index+1), nil
	})
}

func (m *memRecords[T]) Update(_ context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	next, err := fn(slices.Clone(m.records))
	if err != nil {
		return nil, err
	}
	m.records = slices.Clone(next)
	m.writes++
	return next, nil
}

type stubUserRepo struct {
	users []domain.User
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	return slices.Clone(r.users), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, fn func([]domain.User) ([]domain.User, error)) ([]domain.User, error) {
	next, err := fn(slices.Clone(r.users))
	if err != nil {
		return nil, err
	}
	r.users = slices.Clone(next)
	return next, nil
}

type stubSessions struct {
	byToken map[string]domain.Session
}

func newStubSessions() *stubSessions {
	return &stubSessions{byToken: make(map[string]domain.Session)}
}

func (s *stubSessions) Put(sess domain.Session) { s.byToken[sess.Token] = sess }

func (s *stubSessions) Get(token string) (domain.Session, bool) {
	sess, ok := s.byToken[token]
	return sess, ok
}

func (s *stubSessions) Delete(token string) { delete(s.byToken, token) }

func (s *stubSessions) DeleteUser(username string) int {
	n := 0
	for token, sess := range s.byToken {
		if sess.Username == username {
			delete(s.byToken, token)
			n++
		}
	}
	return n
}

func (s *stubSessions) Len() int { return len(s.byToken) }

func (s *stubSessions) Clear() { clear(s.byToken) }

var errDiskFull = errors.New("disk full")
