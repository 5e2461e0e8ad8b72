package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from the payment total, never set by callers.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Known payment modes. The field is free-form in practice; these are the
// values the UI offers.
const (
	PaymentModeCash         = "cash"
	PaymentModeUPI          = "upi"
	PaymentModeBankTransfer = "bank-transfer"
	PaymentModeCard         = "card"
	PaymentModeCheque       = "cheque"
	PaymentModeGoldExchange = "gold-exchange"
	PaymentModeOther        = "other"
)

// Payment is one recorded partial or full payment against a sold record.
// Payments are append-only and owned by their parent record.
type Payment struct {
	ID         uuid.UUID       `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Mode       string          `json:"mode"`
	PaidBy     string          `json:"paidBy"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	RecordedBy string          `json:"recordedBy"`
}

// SoldRecord is the terminal artifact of a sale. Exactly one of InventoryID
// and OrderID is set for the lifetime of the record. FinalPrice,
// PaymentStatus and Profit are derived; Recompute overwrites them on every
// mutation and client-supplied values are never trusted.
type SoldRecord struct {
	ID             uuid.UUID       `json:"id"`
	BillingID      string          `json:"billingID"`
	InventoryID    *uuid.UUID      `json:"inventoryId"`
	OrderID        *uuid.UUID      `json:"orderId"`
	ProductID      string          `json:"productID,omitempty"`
	ProductFields  []FieldValue    `json:"productFields"`
	SoldFields     []FieldValue    `json:"soldFields"`
	InventoryPrice decimal.Decimal `json:"inventoryPrice"`
	SellingPrice   decimal.Decimal `json:"sellingPrice"`
	Discount       decimal.Decimal `json:"discount"`
	FinalPrice     decimal.Decimal `json:"finalPrice"`
	Payments       []Payment       `json:"payments"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	Profit         decimal.Decimal `json:"profit"`
	SoldAt         time.Time       `json:"soldAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// TotalPaid sums all recorded payment amounts.
func (s *SoldRecord) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Recompute derives finalPrice, paymentStatus and profit from the current
// selling price, discount and payment list. It is idempotent.
func (s *SoldRecord) Recompute() {
	s.FinalPrice = s.SellingPrice.Sub(s.Discount)
	if s.FinalPrice.IsNegative() {
		s.FinalPrice = decimal.Zero
	}

	totalPaid := s.TotalPaid()
	switch {
	case totalPaid.IsZero():
		s.PaymentStatus = PaymentStatusPending
	case totalPaid.LessThan(s.FinalPrice):
		s.PaymentStatus = PaymentStatusPartial
	default:
		s.PaymentStatus = PaymentStatusPaid
	}

	s.Profit = s.FinalPrice.Sub(s.InventoryPrice)
}

// ResolvedSoldRecord is a SoldRecord with field definitions joined in.
// When the record is linked to an order, the order is included with its own
// resolved order fields.
type ResolvedSoldRecord struct {
	SoldRecord
	ProductFields []ResolvedFieldValue `json:"productFields"`
	SoldFields    []ResolvedFieldValue `json:"soldFields"`
	Order         *ResolvedOrder       `json:"order,omitempty"`
}
