package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

// ItemService implements the catalog and the rename cascade into orders.
type ItemService struct {
	items  ports.ItemRepository
	orders ports.OrderRepository
	log    zerolog.Logger
}

func NewItemService(items ports.ItemRepository, orders ports.OrderRepository, log zerolog.Logger) *ItemService {
	return &ItemService{items: items, orders: orders, log: log}
}

func (s *ItemService) ListItems(ctx context.Context) ([]string, error) {
	return s.items.List(ctx)
}

func (s *ItemService) CreateItem(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}

	items, err := s.items.Update(ctx, func(items []string) ([]string, error) {
		if slices.Contains(items, name) {
			return nil, domain.NewValidationError("item already exists")
		}
		return append(items, name), nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("name", name).Msg("item created")
	return items, nil
}

// RenameItem renames the catalog entry at index, then rewrites every order
// that referenced the old name. The two files are written independently: if
// the second write fails the catalog is already renamed.
func (s *ItemService) RenameItem(ctx context.Context, index int, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}

	var oldName string
	items, err := s.items.Update(ctx, func(items []string) ([]string, error) {
		if index < 0 || index >= len(items) {
			return nil, domain.ErrItemNotFound
		}
		oldName = items[index]
		if name == oldName {
			return items, nil
		}
		for i, other := range items {
			if i != index && other == name {
				return nil, domain.NewValidationError("item already exists")
			}
		}
		items[index] = name
		return items, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	if oldName == name {
		return items, nil
	}

	rewritten := 0
	_, err = s.orders.Update(ctx, func(orders []domain.Order) ([]domain.Order, error) {
		for i := range orders {
			if orders[i].Item == oldName {
				orders[i].Item = name
				rewritten++
			}
		}
		return orders, nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("from", oldName).Str("to", name).Msg("item renamed but orders not updated")
		return nil, fmt.Errorf("rename item: cascade to orders: %w", err)
	}

	s.log.Info().Str("from", oldName).Str("to", name).Int("orders_rewritten", rewritten).Msg("item renamed")
	return items, nil
}
