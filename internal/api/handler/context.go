package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// ctxPrincipal returns the identity injected by the Auth middleware. A missing
// principal means the route was mounted without Auth; treat it as 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := domain.PrincipalFromContext(c.Request().Context())
	if !ok || !p.IsAuthenticated() {
		return domain.Principal{}, domain.Unauthorized(domain.ReasonInvalidOrExpired)
	}
	return p, nil
}
