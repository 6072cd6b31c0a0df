package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

// RBAC enforces role-based access control. The role is resolved from the user
// store on every request, never cached and never trusted from the token, so an
// admin role change takes effect on the caller's next request. An unknown
// identity and a role mismatch are both a plain 403.
func RBAC(resolver ports.RoleResolver, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			role, err := resolver.ResolveRole(c.Request().Context(), email)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
