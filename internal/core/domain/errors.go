package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrInvalidPassword = errors.New("invalid password")
	ErrJobNotFound     = errors.New("job not found")
	ErrAlreadyApplied  = errors.New("already applied")
	ErrApplyInProgress = errors.New("application already in progress")
	ErrInvalidToken    = errors.New("invalid token")
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError returns a *ValidationError carrying msg.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// UnauthorizedReason tells the client why its credential was rejected.
type UnauthorizedReason string

const (
	ReasonNoToken          UnauthorizedReason = "no_token"
	ReasonMalformed        UnauthorizedReason = "malformed"
	ReasonInvalidOrExpired UnauthorizedReason = "invalid_or_expired"
)

// Message is the client-facing text for the reason.
func (r UnauthorizedReason) Message() string {
	switch r {
	case ReasonNoToken:
		return "No token provided"
	case ReasonMalformed:
		return "Invalid token format"
	default:
		return "Token is not valid"
	}
}

// UnauthorizedError means the caller must (re)authenticate.
type UnauthorizedError struct {
	Reason UnauthorizedReason
}

func (e *UnauthorizedError) Error() string        { return e.Reason.Message() }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

func Unauthorized(reason UnauthorizedReason) error {
	return &UnauthorizedError{Reason: reason}
}

// ForbiddenError means the caller is authenticated but the policy denies the
// operation.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string        { return e.Reason }
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

func Forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}
