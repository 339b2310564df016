package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubAuthService struct {
	loginFn   func(ctx context.Context, username, password string) (*domain.Session, error)
	loggedOut []string
	sessions  map[string]domain.Session
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(_ context.Context, token string) {
	s.loggedOut = append(s.loggedOut, token)
}

func (s *stubAuthService) CurrentUser(_ context.Context, token string) (*domain.Session, bool) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	return &sess, true
}

type stubOrderService struct {
	orders []domain.Order
	last   ports.OrderInput
	err    error
}

func (s *stubOrderService) ListOrders(context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderService) CreateOrder(_ context.Context, in ports.OrderInput) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.last = in
	s.orders = append(s.orders, domain.Order{Item: in.Item, Qty: in.Qty})
	return s.orders, nil
}

func (s *stubOrderService) ReplaceOrder(_ context.Context, index int, in ports.OrderInput) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	if index >= len(s.orders) {
		return nil, domain.ErrOrderNotFound
	}
	s.last = in
	s.orders[index] = domain.Order{Item: in.Item, Qty: in.Qty}
	return s.orders, nil
}

func (s *stubOrderService) DeleteOrder(_ context.Context, index int) ([]domain.Order, error) {
	if index >= len(s.orders) {
		return nil, domain.ErrOrderNotFound
	}
	s.orders = append(s.orders[:index], s.orders[index+1:]...)
	return s.orders, nil
}

func (s *stubOrderService) Summary(context.Context) (*domain.Summary, error) {
	lines := domain.Summarize(s.orders)
	total := 0
	for _, l := range lines {
		total += l.Qty
	}
	return &domain.Summary{Date: "2026-10-18", Totals: lines, Total: total}, nil
}

type stubItemService struct {
	items   []string
	renamed map[int]string
	err     error
}

func (s *stubItemService) ListItems(context.Context) ([]string, error) {
	return s.items, nil
}

func (s *stubItemService) CreateItem(_ context.Context, name string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, name)
	return s.items, nil
}

func (s *stubItemService) RenameItem(_ context.Context, index int, name string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if index >= len(s.items) {
		return nil, domain.ErrItemNotFound
	}
	if s.renamed == nil {
		s.renamed = make(map[int]string)
	}
	s.renamed[index] = name
	s.items[index] = name
	return s.items, nil
}

type stubUserService struct {
	users      []domain.PublicUser
	lastUpdate ports.UpdateUserInput
	deleted    string
	err        error
}

func (s *stubUserService) ListUsers(context.Context) ([]domain.PublicUser, error) {
	return s.users, nil
}

func (s *stubUserService) CreateUser(_ context.Context, username, _, role string) ([]domain.PublicUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.users = append(s.users, domain.PublicUser{Username: username, Role: role})
	return s.users, nil
}

func (s *stubUserService) UpdateUser(_ context.Context, _ string, in ports.UpdateUserInput) ([]domain.PublicUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastUpdate = in
	return s.users, nil
}

func (s *stubUserService) DeleteUser(_ context.Context, username string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = username
	return nil
}

func (s *stubUserService) EnsureAdmin(context.Context, string, string) (bool, error) {
	return false, nil
}

type fixedCounter int

func (n fixedCounter) Len() int { return int(n) }

