// Package types carries the application-layer inputs for the orders context.
package types

import "github.com/google/uuid"

// OrderItemInput is one requested line of a create-order call.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int32
}

// CreateOrderInput is the payload of the order-creation use case.
type CreateOrderInput struct {
	Items []OrderItemInput
}
