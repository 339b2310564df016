package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/api/metrics"
	"github.com/panaderia/bread-orders/internal/core/domain"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

// ItemHandler handles HTTP requests for the item catalog.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

type itemRequest struct {
	Name string `json:"name" validate:"required"`
}

// List handles GET /api/items.
//
// @Summary      List catalog items
// @Tags         items
// @Produce      json
// @Success      200  {array}   string
// @Router       /api/items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/items.
//
// @Summary      Add a catalog item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      itemRequest  true  "Item name"
// @Success      201   {array}   string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	var req itemRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	items, err := h.service.CreateItem(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	metrics.ItemMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, items)
}

// Rename handles PUT /api/items/:i. Orders referencing the old name are
// rewritten to the new one.
//
// @Summary      Rename a catalog item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        i     path      int          true  "Zero-based position"
// @Param        body  body      itemRequest  true  "New name"
// @Success      200   {array}   string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/items/{i} [put]
func (h *ItemHandler) Rename(c echo.Context) error {
	i, err := indexParam(c, domain.ErrItemNotFound)
	if err != nil {
		return err
	}
	var req itemRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	items, err := h.service.RenameItem(c.Request().Context(), i, req.Name)
	if err != nil {
		return err
	}
	metrics.ItemMutationsTotal.WithLabelValues("rename").Inc()
	return c.JSON(http.StatusOK, items)
}
