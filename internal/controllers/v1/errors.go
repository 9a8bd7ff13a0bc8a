package v1

import (
	"errors"
	"net/http"

	"github.com/centuition/backend/internal/auth"
	"github.com/centuition/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no account matching your query"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, errInvalidCredentials) || errors.Is(err, auth.ErrTokenInvalid) {
		return http.StatusUnauthorized
	}

	if errors.Is(err, models.ErrUserEmailNotUnique) ||
		errors.Is(err, models.ErrAccountNameNotUnique) ||
		errors.Is(err, models.ErrCategoryNameNotUnique) ||
		errors.Is(err, models.ErrBudgetExists) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errInvalidCredentials = errors.New("the email or password is incorrect")
	errPasswordTooShort   = errors.New("the password must be at least 8 characters long")
	errEmailRequired      = errors.New("the email address must be set")
)
