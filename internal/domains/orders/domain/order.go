package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates order states. Transitions are unconstrained: any status may
// follow any other.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var (
	ErrInvalidStatus   = errors.New("order status is invalid")
	ErrInvalidQuantity = errors.New("order item quantity must be greater than zero")
	ErrNoItems         = errors.New("order requires at least one item")
)

// ProductSnapshot captures the product state embedded in an order read model,
// taken at the moment the reservation committed.
type ProductSnapshot struct {
	ID    uuid.UUID
	Name  string
	SKU   string
	Price decimal.Decimal
	Stock int32
}

// OrderItem is a line within an order. It is owned exclusively by its order and
// its product reference is read-only once set.
type OrderItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
	Product   ProductSnapshot
}

// Order is the aggregate managed by the orders bounded context. Items live and
// die with the order; they are never addressable on their own.
type Order struct {
	ID     uuid.UUID
	Status Status
	Items  []OrderItem
}

// NewOrder builds a pending order around the given items.
func NewOrder(items []OrderItem) *Order {
	return &Order{Status: StatusPending, Items: items}
}

// UpdateStatus overwrites the status unconditionally after checking enum
// membership. No transition rules apply.
func (o *Order) UpdateStatus(status Status) error {
	if !IsValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	o.Status = status
	return nil
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !IsValidStatus(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
