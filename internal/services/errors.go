package services

import (
	"errors"

	apperrors "aisolutions/pkg/errors"
)

// Admin guard rejection reasons. Each is wrapped in an AppError whose code
// selects the response status.
var (
	ErrMissingAuthHeader     = errors.New("Authorization header is missing")
	ErrMalformedAuthHeader   = errors.New("Invalid authorization header format")
	ErrInvalidAuthScheme     = errors.New("Invalid authorization scheme")
	ErrTokenExpired          = errors.New("Token has expired")
	ErrTokenInvalid          = errors.New("Invalid token")
	ErrInsufficientPrivilege = errors.New("Admin privileges required")
	ErrInvalidCredentials    = errors.New("Invalid credentials")
	ErrCredentialsRequired   = errors.New("Username and password are required")
)

// unauthorized wraps a guard or login failure as a 401
func unauthorized(reason error, message string) *apperrors.AppError {
	if message == "" {
		message = reason.Error()
	}
	return apperrors.Wrap(apperrors.ErrCodeUnauthorized, message, reason)
}

// forbidden wraps a privilege failure as a 403
func forbidden(reason error) *apperrors.AppError {
	return apperrors.Wrap(apperrors.ErrCodeForbidden, reason.Error(), reason)
}

// GuardReason names the rejection reason of a guard error for metrics and
// logs.
func GuardReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingAuthHeader):
		return "missing_header"
	case errors.Is(err, ErrMalformedAuthHeader), errors.Is(err, ErrInvalidAuthScheme):
		return "malformed_header"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenInvalid):
		return "invalid"
	case errors.Is(err, ErrInsufficientPrivilege):
		return "insufficient_privilege"
	default:
		return "unknown"
	}
}
