// Package types carries the application-layer inputs for the products context.
package types

import "github.com/shopspring/decimal"

// ProductSubmission is one entry of a product onboarding batch.
type ProductSubmission struct {
	Name  string
	SKU   string
	Price decimal.Decimal
	Stock int32
}

// OrderDetails is an externally materialized view of a historical order, used
// only as summary-aggregation input. Items may be nil.
type OrderDetails struct {
	ID     string
	Status string
	Items  []OrderItemDetails
}

// OrderItemDetails pairs a quantity with the product snapshot it was sold at.
type OrderItemDetails struct {
	ProductID string
	Quantity  int32
	Product   ProductDetails
}

// ProductDetails is the product snapshot embedded in order details.
type ProductDetails struct {
	ID    string
	Name  string
	SKU   string
	Price decimal.Decimal
	Stock int32
}
