package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestRecomputeDerivesFinalPriceAndProfit(t *testing.T) {
	record := &SoldRecord{
		InventoryPrice: dec(500),
		SellingPrice:   dec(1000),
		Discount:       dec(100),
	}
	record.Recompute()

	assert.True(t, record.FinalPrice.Equal(dec(900)))
	assert.True(t, record.Profit.Equal(dec(400)))
	assert.Equal(t, PaymentStatusPending, record.PaymentStatus)
}

func TestRecomputeClampsNegativeFinalPrice(t *testing.T) {
	record := &SoldRecord{
		SellingPrice: dec(100),
		Discount:     dec(250),
	}
	record.Recompute()

	assert.True(t, record.FinalPrice.IsZero())
	assert.True(t, record.Profit.Equal(decimal.Zero.Sub(record.InventoryPrice)))
}

func TestRecomputePaymentStatusBoundaries(t *testing.T) {
	base := SoldRecord{SellingPrice: dec(1000), Discount: dec(100)}

	tests := []struct {
		name     string
		payments []Payment
		want     PaymentStatus
	}{
		{"no payments", nil, PaymentStatusPending},
		{"below final price", []Payment{{Amount: dec(300)}}, PaymentStatusPartial},
		{"exactly final price", []Payment{{Amount: dec(300)}, {Amount: dec(600)}}, PaymentStatusPaid},
		{"above final price", []Payment{{Amount: dec(1200)}}, PaymentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := base
			record.Payments = tt.payments
			record.Recompute()
			assert.Equal(t, tt.want, record.PaymentStatus)
		})
	}
}

func TestRecomputeZeroFinalPriceWithNoPaymentsIsPending(t *testing.T) {
	record := &SoldRecord{SellingPrice: dec(0), Discount: dec(0)}
	record.Recompute()

	// A free sale with nothing paid stays pending; the first payment of any
	// amount flips it to paid.
	assert.Equal(t, PaymentStatusPending, record.PaymentStatus)

	record.Payments = append(record.Payments, Payment{Amount: dec(1)})
	record.Recompute()
	assert.Equal(t, PaymentStatusPaid, record.PaymentStatus)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	record := &SoldRecord{
		InventoryPrice: dec(500),
		SellingPrice:   dec(1000),
		Discount:       dec(100),
		Payments:       []Payment{{Amount: dec(300)}},
	}
	record.Recompute()
	first := *record
	record.Recompute()

	assert.True(t, first.FinalPrice.Equal(record.FinalPrice))
	assert.True(t, first.Profit.Equal(record.Profit))
	assert.Equal(t, first.PaymentStatus, record.PaymentStatus)
}

func TestTotalPaidSumsAllPayments(t *testing.T) {
	record := &SoldRecord{Payments: []Payment{
		{Amount: dec(100)},
		{Amount: decimal.NewFromFloat(49.50)},
		{Amount: decimal.NewFromFloat(0.50)},
	}}
	assert.True(t, record.TotalPaid().Equal(dec(150)))
}
