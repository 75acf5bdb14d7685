package application

import (
	"errors"
	"fmt"

	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant before any
// store access happened.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
