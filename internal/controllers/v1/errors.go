package v1

import (
	"errors"
	"net/http"

	"github.com/cheqify/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cheque errors
var (
	errChequeStatusInvalid = errors.New("the specified cheque status is invalid")
	errChequeNotDeleted    = errors.New("the cheque is not in the deleted partition")
	errImageNotReadable    = errors.New("the uploaded image could not be read")
)
