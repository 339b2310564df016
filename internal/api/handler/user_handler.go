package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panaderia/bread-orders/internal/api/metrics"
	"github.com/panaderia/bread-orders/internal/core/ports"
)

// UserHandler exposes account administration to admins.
type UserHandler struct {
	service  ports.UserService
	sessions sessionCounter
}

func NewUserHandler(service ports.UserService, sessions sessionCounter) *UserHandler {
	return &UserHandler{service: service, sessions: sessions}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type updateUserRequest struct {
	Role     *string `json:"role"     validate:"omitempty,oneof=admin user"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

// List handles GET /api/users.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.PublicUser
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /api/users.
//
// @Summary      Create an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account"
// @Success      201   {array}   domain.PublicUser
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	users, err := h.service.CreateUser(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, users)
}

// Update handles PUT /api/users/:username. Changing the role or password
// signs the user out everywhere.
//
// @Summary      Update an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        username  path      string             true  "Username"
// @Param        body      body      updateUserRequest  true  "Fields to change"
// @Success      200       {array}   domain.PublicUser
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/{username} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	users, err := h.service.UpdateUser(c.Request().Context(), c.Param("username"), ports.UpdateUserInput{
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	h.observeSessions()
	return c.JSON(http.StatusOK, users)
}

// Delete handles DELETE /api/users/:username.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  okResponse
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/{username} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("username")); err != nil {
		return err
	}
	h.observeSessions()
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

func (h *UserHandler) observeSessions() {
	if h.sessions != nil {
		metrics.ActiveSessions.Set(float64(h.sessions.Len()))
	}
}
