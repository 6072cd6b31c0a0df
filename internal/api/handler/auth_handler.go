package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=buyer seller admin"`
}

type registerResponse struct {
	User    *domain.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

type sessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates a new identity.
//
// @Summary      Register an identity
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Success      200   {object}  registerResponse  "email already registered"
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	if result.AlreadyRegistered {
		return c.JSON(http.StatusOK, registerResponse{Message: "already registered"})
	}
	return c.JSON(http.StatusCreated, registerResponse{User: result.User})
}

// CreateSession authenticates an identity and issues a bearer token.
//
// @Summary      Issue a bearer credential
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      sessionRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /sessions [post]
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{Token: token, User: user})
}
