package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

// OrderService implements the shared order list. Orders are not checked
// against the catalog: an order may name an item that does not exist.
type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log, now: time.Now}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) CreateOrder(ctx context.Context, in ports.OrderInput) ([]domain.Order, error) {
	order, err := toOrder(in)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.Append(ctx, order)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("item", order.Item).Int("qty", order.Qty).Int("index", len(orders)-1).Msg("order created")
	return orders, nil
}

func (s *OrderService) ReplaceOrder(ctx context.Context, index int, in ports.OrderInput) ([]domain.Order, error) {
	order, err := toOrder(in)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ReplaceAt(ctx, index, order)
	if err != nil {
		return nil, orderErr(err)
	}
	s.log.Info().Int("index", index).Str("item", order.Item).Int("qty", order.Qty).Msg("order updated")
	return orders, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, index int) ([]domain.Order, error) {
	orders, err := s.repo.DeleteAt(ctx, index)
	if err != nil {
		return nil, orderErr(err)
	}
	s.log.Info().Int("index", index).Msg("order deleted")
	return orders, nil
}

// Summary aggregates every order by item for the daily summary export.
func (s *OrderService) Summary(ctx context.Context) (*domain.Summary, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	lines := domain.Summarize(orders)
	total := 0
	for _, l := range lines {
		total += l.Qty
	}
	return &domain.Summary{
		Date:   s.now().Format(time.DateOnly),
		Totals: lines,
		Total:  total,
	}, nil
}

func toOrder(in ports.OrderInput) (domain.Order, error) {
	item := strings.TrimSpace(in.Item)
	if item == "" {
		return domain.Order{}, domain.NewValidationError("item is required")
	}
	if in.Qty <= 0 {
		return domain.Order{}, domain.NewValidationError("qty must be a positive integer")
	}
	return domain.Order{Item: item, Qty: in.Qty}, nil
}

func orderErr(err error) error {
	if errors.Is(err, domain.ErrIndexOutOfRange) {
		return domain.ErrOrderNotFound
	}
	return err
}
