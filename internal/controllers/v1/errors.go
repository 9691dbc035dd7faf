package v1

import (
	"errors"
	"net/http"

	"github.com/fintrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

var (
	errInvalidCredentials = errors.New("invalid email or password")
	errEmailInvalid       = errors.New("the email address is not valid")
	errPasswordTooShort   = errors.New("the password needs to have at least 8 characters")
	errSortFieldInvalid   = errors.New("the sort parameter must be one of date, amount, title, createdAt")
	errSortOrderInvalid   = errors.New("the order parameter must be either asc or desc")
	errTimeRangeInvalid   = errors.New("fromDate must not be after toDate")
)

// httpError is the error that is returned to the client in the response body.
type httpError struct {
	Error string `json:"error" example:"A human readable error message"`
}

// status translates an error that occurred in the backend to the correct
// HTTP status for the client.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCategoryNameNotUnique), errors.Is(err, models.ErrEmailNotUnique):
		return http.StatusConflict
	case errors.Is(err, errInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// e writes err to the context with the correct HTTP status.
func e(c *gin.Context, err error) {
	c.JSON(status(err), httpError{Error: err.Error()})
}
