package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

// UserHandler exposes role checks and the admin user operations.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListSellers handles GET /users/sellers (admin).
//
// @Summary      List all sellers
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /users/sellers [get]
func (h *UserHandler) ListSellers(c echo.Context) error {
	users, err := h.userService.ListByRole(c.Request().Context(), domain.RoleSeller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListBuyers handles GET /users/buyers (admin).
//
// @Summary      List all buyers
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /users/buyers [get]
func (h *UserHandler) ListBuyers(c echo.Context) error {
	users, err := h.userService.ListByRole(c.Request().Context(), domain.RoleBuyer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CheckBuyer handles GET /users/buyers/check?email=, a public capability check.
func (h *UserHandler) CheckBuyer(c echo.Context) error {
	return h.check(c, domain.RoleBuyer, "isBuyer")
}

// CheckSeller handles GET /users/sellers/check?email=.
func (h *UserHandler) CheckSeller(c echo.Context) error {
	return h.check(c, domain.RoleSeller, "isSeller")
}

// CheckAdmin handles GET /users/admins/check?email=.
func (h *UserHandler) CheckAdmin(c echo.Context) error {
	return h.check(c, domain.RoleAdmin, "isAdmin")
}

func (h *UserHandler) check(c echo.Context, role domain.Role, field string) error {
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email query parameter is required")
	}
	ok, err := h.userService.HasRole(c.Request().Context(), email, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{field: ok})
}

// Verify handles PATCH /users/sellers/:id and /users/buyers/:id (admin).
//
// @Summary      Mark a user verified
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/sellers/{id} [patch]
func (h *UserHandler) Verify(c echo.Context) error {
	if err := h.userService.Verify(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"acknowledged": true})
}

// Delete handles DELETE /users/sellers/:id and /users/buyers/:id (admin).
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/sellers/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"acknowledged": true})
}
