package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

func newItemFixture(orders ...domain.Order) (*ItemService, *memRecords[string], *memRecords[domain.Order]) {
	items := newMemRecords(domain.DefaultCatalog...)
	orderRepo := newMemRecords(orders...)
	return NewItemService(items, orderRepo, zerolog.Nop()), items, orderRepo
}

func TestItemService_CreateItem(t *testing.T) {
	svc, _, _ := newItemFixture()
	ctx := context.Background()

	items, err := svc.CreateItem(ctx, "Ciabatta")
	require.NoError(t, err)
	assert.Contains(t, items, "Ciabatta")
	assert.Len(t, items, len(domain.DefaultCatalog)+1)

	var ve *domain.ValidationError
	_, err = svc.CreateItem(ctx, "Ciabatta")
	assert.ErrorAs(t, err, &ve)
	_, err = svc.CreateItem(ctx, "  Ciabatta ")
	assert.ErrorAs(t, err, &ve)
	_, err = svc.CreateItem(ctx, "")
	assert.ErrorAs(t, err, &ve)
}

func TestItemService_RenameItem_Cascades(t *testing.T) {
	svc, itemRepo, orderRepo := newItemFixture(
		domain.Order{Item: "Rye", Qty: 1},
		domain.Order{Item: "Baguette", Qty: 2},
		domain.Order{Item: "Rye", Qty: 3},
	)
	ctx := context.Background()

	items, err := svc.RenameItem(ctx, 2, "Dark Rye")
	require.NoError(t, err)
	assert.Equal(t, []string{"Baguette", "Whole Wheat", "Dark Rye", "Sourdough"}, items)
	assert.Equal(t, items, itemRepo.records)

	assert.Equal(t, []domain.Order{
		{Item: "Dark Rye", Qty: 1},
		{Item: "Baguette", Qty: 2},
		{Item: "Dark Rye", Qty: 3},
	}, orderRepo.records)
}

func TestItemService_RenameItem_SameNameIsNoop(t *testing.T) {
	svc, _, orderRepo := newItemFixture(domain.Order{Item: "Rye", Qty: 1})

	items, err := svc.RenameItem(context.Background(), 2, "Rye")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCatalog, items)
	assert.Zero(t, orderRepo.writes)
}

func TestItemService_RenameItem_Errors(t *testing.T) {
	svc, itemRepo, orderRepo := newItemFixture(domain.Order{Item: "Rye", Qty: 1})
	ctx := context.Background()

	var ve *domain.ValidationError
	_, err := svc.RenameItem(ctx, 0, "Rye")
	assert.ErrorAs(t, err, &ve, "duplicate of another item")
	_, err = svc.RenameItem(ctx, 0, " ")
	assert.ErrorAs(t, err, &ve)

	_, err = svc.RenameItem(ctx, 4, "Ciabatta")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	_, err = svc.RenameItem(ctx, -1, "Ciabatta")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	assert.Equal(t, domain.DefaultCatalog, itemRepo.records)
	assert.Equal(t, []domain.Order{{Item: "Rye", Qty: 1}}, orderRepo.records)
}

func TestItemService_RenameItem_CascadeFailureLeavesCatalogRenamed(t *testing.T) {
	svc, itemRepo, orderRepo := newItemFixture(domain.Order{Item: "Rye", Qty: 1})
	orderRepo.updateErr = errDiskFull

	_, err := svc.RenameItem(context.Background(), 2, "Dark Rye")
	require.ErrorIs(t, err, errDiskFull)

	assert.Equal(t, "Dark Rye", itemRepo.records[2])
	assert.Equal(t, "Rye", orderRepo.records[0].Item)
}
