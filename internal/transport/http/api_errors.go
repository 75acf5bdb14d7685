package inventoryserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	ordersapp "github.com/cams-platform/inventory-management/internal/domains/orders/application"
	ordersports "github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	"github.com/cams-platform/inventory-management/internal/shared/apiresponse"
)

const conflictMessage = "Conflict occurred: The product was modified by another request. Please try again."

// respondValidationFailed answers malformed or invalid payloads with the
// envelope's Validation Failed shape, listing one error per failed field.
func respondValidationFailed(c *gin.Context, err error) {
	var fieldErrors validator.ValidationErrors
	var details []string
	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			details = append(details, fmt.Sprintf("%s: failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
	} else if err != nil {
		details = append(details, err.Error())
	}
	c.JSON(http.StatusBadRequest, apiresponse.FailedWithMessage("Validation Failed", details...))
}

// respondOrderServiceError maps the reservation error taxonomy onto HTTP
// statuses: absent references are 404, business-rule violations 400, lost
// optimistic locks 409, everything else a generic 500.
func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrProductNotFound) || errors.Is(err, ordersports.ErrNotFound):
		c.JSON(http.StatusNotFound, apiresponse.FailedWithMessage(err.Error()))
	case errors.Is(err, ordersports.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, apiresponse.FailedWithMessage(err.Error()))
	case errors.Is(err, ordersports.ErrConflict):
		c.JSON(http.StatusConflict, apiresponse.FailedWithMessage(conflictMessage))
	case errors.Is(err, ordersapp.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, apiresponse.FailedWithMessage("Validation Failed", err.Error()))
	default:
		respondInternalError(c, err)
	}
}

// respondInternalError surfaces store and unhandled failures as a generic
// server-side envelope without internal detail beyond the message string.
func respondInternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, apiresponse.FailedWithMessage(err.Error()))
}
