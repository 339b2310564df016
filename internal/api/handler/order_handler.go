package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/api/metrics"
	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

// OrderHandler handles HTTP requests for the shared order list.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderRequest struct {
	Item string `json:"item" validate:"required"`
	Qty  int    `json:"qty"  validate:"gt=0"`
}

func (r orderRequest) input() ports.OrderInput {
	return ports.OrderInput{Item: r.Item, Qty: r.Qty}
}

// List handles GET /api/orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}   domain.Order
// @Failure      500  {object}  map[string]string
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.ListOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Create handles POST /api/orders.
//
// @Summary      Add an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      orderRequest  true  "Item and quantity"
// @Success      201   {array}   domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req orderRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	orders, err := h.service.CreateOrder(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	metrics.OrderMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, orders)
}

// Replace handles PUT /api/orders/:i.
//
// @Summary      Replace the order at a position
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        i     path      int           true  "Zero-based position"
// @Param        body  body      orderRequest  true  "Item and quantity"
// @Success      200   {array}   domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/orders/{i} [put]
func (h *OrderHandler) Replace(c echo.Context) error {
	i, err := indexParam(c, domain.ErrOrderNotFound)
	if err != nil {
		return err
	}
	var req orderRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	orders, err := h.service.ReplaceOrder(c.Request().Context(), i, req.input())
	if err != nil {
		return err
	}
	metrics.OrderMutationsTotal.WithLabelValues("replace").Inc()
	return c.JSON(http.StatusOK, orders)
}

// Delete handles DELETE /api/orders/:i. Later orders shift down by one.
//
// @Summary      Delete the order at a position
// @Tags         orders
// @Produce      json
// @Param        i    path      int  true  "Zero-based position"
// @Success      200  {object}  okResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{i} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	i, err := indexParam(c, domain.ErrOrderNotFound)
	if err != nil {
		return err
	}
	if _, err := h.service.DeleteOrder(c.Request().Context(), i); err != nil {
		return err
	}
	metrics.OrderMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Summary handles GET /api/summary.
//
// @Summary      Daily totals per item
// @Tags         orders
// @Produce      json
// @Success      200  {object}  domain.Summary
// @Failure      401  {object}  map[string]string
// @Router       /api/summary [get]
func (h *OrderHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
