package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is one unit of unsold stock. Items are soft-deleted by
// flipping InStock to false; the row itself survives so historical sales
// can keep referencing it. The one exception is conversion into an order,
// which removes the row inside the same transaction.
type InventoryItem struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     string          `json:"productID"`
	BaseCostPrice decimal.Decimal `json:"baseCostPrice"`
	Fields        []FieldValue    `json:"fields"`
	InStock       bool            `json:"inStock"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ResolvedInventoryItem is an InventoryItem with field definitions joined in.
type ResolvedInventoryItem struct {
	InventoryItem
	Fields []ResolvedFieldValue `json:"fields"`
}
