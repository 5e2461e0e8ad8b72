package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle states. Any status may be set
// at any time; only enum membership is enforced.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order carries two independent field-value sets: product values (carried
// over from an inventory item and still editable) and order/customer values.
// SourceInventoryID points at the inventory item the order was converted
// from, when there was one; that item no longer exists afterwards.
type Order struct {
	ID                uuid.UUID       `json:"id"`
	OrderID           string          `json:"orderID"`
	BuyingCostPrice   decimal.Decimal `json:"buyingCostPrice"`
	ProductFields     []FieldValue    `json:"productFields"`
	OrderFields       []FieldValue    `json:"orderFields"`
	Status            OrderStatus     `json:"status"`
	SourceInventoryID *uuid.UUID      `json:"sourceInventoryId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ResolvedOrder is an Order with field definitions joined in.
type ResolvedOrder struct {
	Order
	ProductFields []ResolvedFieldValue `json:"productFields"`
	OrderFields   []ResolvedFieldValue `json:"orderFields"`
}
