package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var (
		verr *domain.ValidationError
		uerr *domain.UnauthorizedError
		ferr *domain.ForbiddenError
		he   *echo.HTTPError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.As(err, &uerr):
		return http.StatusUnauthorized, uerr.Reason.Message()
	case errors.As(err, &ferr):
		return http.StatusForbidden, ferr.Reason
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "Job not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrAlreadyApplied):
		return http.StatusBadRequest, "Already applied"
	case errors.Is(err, domain.ErrApplyInProgress):
		return http.StatusConflict, "Application already in progress"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, "User not found"
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusBadRequest, "Invalid password"
	case errors.As(err, &he) && he.Code < http.StatusInternalServerError:
		// Echo's own errors (router 404/405, body limit, etc.)
		if he.Code == http.StatusNotFound {
			return he.Code, "Route not found"
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Server error"
}
