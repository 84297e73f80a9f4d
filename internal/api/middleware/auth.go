package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
	"github.com/jobportal/jobboard-api/pkg/metrics"
)

// Auth verifies the bearer token and attaches the caller's principal to the
// request context. It also sets "user_id" and "role" on the echo context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject(domain.ReasonNoToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return reject(domain.ReasonMalformed)
			}

			p, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return reject(domain.ReasonInvalidOrExpired)
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.ContextWithPrincipal(req.Context(), p)))
			c.Set("user_id", p.UserID)
			c.Set("role", string(p.Role))

			return next(c)
		}
	}
}

func reject(reason domain.UnauthorizedReason) error {
	metrics.AuthFailuresTotal.WithLabelValues(string(reason)).Inc()
	return domain.Unauthorized(reason)
}
