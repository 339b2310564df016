package ports

import "context"

// ItemService defines the use cases on the catalog.
type ItemService interface {
	ListItems(ctx context.Context) ([]string, error)
	CreateItem(ctx context.Context, name string) ([]string, error)
	// RenameItem renames the item at index and rewrites every order that
	// referenced the old name.
	RenameItem(ctx context.Context, index int, name string) ([]string, error)
}
