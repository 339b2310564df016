package jsonfile

import (
	"context"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

const UsersFile = "users.json"

type usersDocument struct {
	Users []domain.User `json:"users"`
}

// UserRepository implements ports.UserRepository on users.json.
type UserRepository struct {
	doc *Document[usersDocument]
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{
		doc: NewDocument(s, UsersFile, func() usersDocument {
			return usersDocument{Users: []domain.User{}}
		}),
	}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	doc, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return normalize(doc.Users), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Update(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) ([]domain.User, error) {
	doc, err := r.doc.Update(ctx, func(doc usersDocument) (usersDocument, error) {
		users, err := fn(normalize(doc.Users))
		if err != nil {
			return usersDocument{}, err
		}
		return usersDocument{Users: normalize(users)}, nil
	})
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// Shadowed reports whether the credential store is currently kept in memory.
func (r *UserRepository) Shadowed() bool {
	return r.doc.Shadowed()
}
