package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// RBAC enforces the role part of the authorization policy for op. It must run
// after Auth. Ownership checks need the job and stay in the service.
func RBAC(op domain.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, _ := domain.PrincipalFromContext(c.Request().Context())
			if err := domain.Authorize(p, op); err != nil {
				return err
			}
			return next(c)
		}
	}
}
