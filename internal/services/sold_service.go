package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bizconsole_backend/internal/models"
	"bizconsole_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSoldNotFound = errors.New("sold record not found")

	// ErrSoldLink marks a violation of the one-link rule: a sold record
	// is backed by exactly one of an inventory item or an order.
	ErrSoldLink = errors.New("sold record must be linked to exactly one of inventory or order")
)

// PaymentRequest carries one payment to record against a sold record.
type PaymentRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Date       *time.Time      `json:"date"`
	Mode       string          `json:"mode"`
	PaidBy     string          `json:"paidBy"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	RecordedBy string          `json:"recordedBy"`
}

// SellFromInventoryRequest converts an inventory item into a sold record.
// ProductFields are the caller's values as edited at the point of sale; they
// replace the item's stored values on the sold record on purpose.
type SellFromInventoryRequest struct {
	InventoryID   uuid.UUID           `json:"inventoryId"`
	ProductFields []models.FieldValue `json:"productFields"`
	SoldFields    []models.FieldValue `json:"soldFields"`
	SellingPrice  decimal.Decimal     `json:"sellingPrice"`
	Discount      decimal.Decimal     `json:"discount"`
	Payments      []PaymentRequest    `json:"payments"`
}

// SellFromOrderRequest converts an order into a sold record. The order keeps
// its own product fields, reachable through the link at read time.
type SellFromOrderRequest struct {
	SoldFields   []models.FieldValue `json:"soldFields"`
	SellingPrice decimal.Decimal     `json:"sellingPrice"`
	Discount     decimal.Decimal     `json:"discount"`
	Payments     []PaymentRequest    `json:"payments"`
}

// SoldService is the sale state machine: it converts sellable units into
// billing records, accumulates payments, and recomputes the derived
// financial fields on every mutation.
type SoldService interface {
	SellFromInventory(req SellFromInventoryRequest) (*models.ResolvedSoldRecord, error)
	SellFromOrder(orderID uuid.UUID, req SellFromOrderRequest) (*models.ResolvedSoldRecord, error)
	AddPayment(soldID uuid.UUID, req PaymentRequest) (*models.ResolvedSoldRecord, error)
	GetSoldRecords() ([]models.ResolvedSoldRecord, error)
	GetSoldRecordByID(id uuid.UUID) (*models.ResolvedSoldRecord, error)
}

type soldService struct {
	soldRepo      repositories.SoldRepository
	inventoryRepo repositories.InventoryRepository
	orderRepo     repositories.OrderRepository
	fieldRepo     repositories.FieldRepository
	counterRepo   repositories.CounterRepository
	db            *sql.DB
}

// NewSoldService creates a new instance of SoldService.
func NewSoldService(
	sr repositories.SoldRepository,
	ir repositories.InventoryRepository,
	or repositories.OrderRepository,
	fr repositories.FieldRepository,
	cr repositories.CounterRepository,
	db *sql.DB,
) SoldService {
	return &soldService{
		soldRepo:      sr,
		inventoryRepo: ir,
		orderRepo:     or,
		fieldRepo:     fr,
		counterRepo:   cr,
		db:            db,
	}
}

func (s *soldService) SellFromInventory(req SellFromInventoryRequest) (*models.ResolvedSoldRecord, error) {
	if req.InventoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: inventoryId is required", ErrValidation)
	}
	if req.SellingPrice.IsNegative() || req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: sellingPrice and discount must not be negative", ErrValidation)
	}
	if err := validateFieldValues(s.fieldRepo, req.ProductFields, req.SoldFields); err != nil {
		return nil, err
	}
	payments, err := buildPayments(req.Payments)
	if err != nil {
		return nil, err
	}

	item, err := s.inventoryRepo.GetByID(req.InventoryID)
	if err != nil {
		return nil, mapNotFound(err, ErrInventoryNotFound, "failed to fetch inventory item")
	}

	inventoryID := item.ID
	record := &models.SoldRecord{
		ID:             uuid.New(),
		InventoryID:    &inventoryID,
		ProductID:      item.ProductID,
		ProductFields:  req.ProductFields,
		SoldFields:     req.SoldFields,
		InventoryPrice: item.BaseCostPrice,
		SellingPrice:   req.SellingPrice,
		Discount:       req.Discount,
		Payments:       payments,
		SoldAt:         time.Now(),
	}
	if err := validateSoldLink(record); err != nil {
		return nil, err
	}
	record.Recompute()

	// Record creation and the out-of-stock flip succeed or fail together,
	// so a sold record can never coexist with an in-stock source item.
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	seq, err := s.counterRepo.Next(tx, "sold")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate billing ID: %w", err)
	}
	record.BillingID = FormatBillingID(seq)

	if err := s.soldRepo.Create(tx, record); err != nil {
		return nil, fmt.Errorf("failed to create sold record: %w", err)
	}
	if err := s.inventoryRepo.SetInStock(tx, item.ID, false); err != nil {
		return nil, fmt.Errorf("failed to mark source item out of stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}
	return s.resolve(record)
}

func (s *soldService) SellFromOrder(orderID uuid.UUID, req SellFromOrderRequest) (*models.ResolvedSoldRecord, error) {
	if req.SellingPrice.IsNegative() || req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: sellingPrice and discount must not be negative", ErrValidation)
	}
	if err := validateFieldValues(s.fieldRepo, req.SoldFields); err != nil {
		return nil, err
	}
	payments, err := buildPayments(req.Payments)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "failed to fetch order")
	}

	// The order's status is left untouched: selling records the billing
	// artifact, it does not drive the order lifecycle.
	linkedOrderID := order.ID
	record := &models.SoldRecord{
		ID:             uuid.New(),
		OrderID:        &linkedOrderID,
		ProductFields:  []models.FieldValue{},
		SoldFields:     req.SoldFields,
		InventoryPrice: order.BuyingCostPrice,
		SellingPrice:   req.SellingPrice,
		Discount:       req.Discount,
		Payments:       payments,
		SoldAt:         time.Now(),
	}
	if err := validateSoldLink(record); err != nil {
		return nil, err
	}
	record.Recompute()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	seq, err := s.counterRepo.Next(tx, "sold")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate billing ID: %w", err)
	}
	record.BillingID = FormatBillingID(seq)

	if err := s.soldRepo.Create(tx, record); err != nil {
		return nil, fmt.Errorf("failed to create sold record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}
	return s.resolve(record)
}

func (s *soldService) AddPayment(soldID uuid.UUID, req PaymentRequest) (*models.ResolvedSoldRecord, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be a positive number", ErrValidation)
	}

	record, err := s.soldRepo.GetByID(soldID)
	if err != nil {
		return nil, mapNotFound(err, ErrSoldNotFound, "failed to fetch sold record")
	}

	record.Payments = append(record.Payments, newPayment(req))
	record.Recompute()

	if err := s.soldRepo.Update(s.db, record); err != nil {
		return nil, mapNotFound(err, ErrSoldNotFound, "failed to record payment")
	}
	return s.resolve(record)
}

func (s *soldService) GetSoldRecords() ([]models.ResolvedSoldRecord, error) {
	records, err := s.soldRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get sold records: %w", err)
	}

	resolved := make([]models.ResolvedSoldRecord, 0, len(records))
	for i := range records {
		r, err := s.resolve(&records[i])
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *r)
	}
	return resolved, nil
}

func (s *soldService) GetSoldRecordByID(id uuid.UUID) (*models.ResolvedSoldRecord, error) {
	record, err := s.soldRepo.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrSoldNotFound, "failed to fetch sold record")
	}
	return s.resolve(record)
}

func (s *soldService) resolve(record *models.SoldRecord) (*models.ResolvedSoldRecord, error) {
	sets, err := resolveFieldValues(s.fieldRepo, record.ProductFields, record.SoldFields)
	if err != nil {
		return nil, err
	}
	resolved := &models.ResolvedSoldRecord{
		SoldRecord:    *record,
		ProductFields: sets[0],
		SoldFields:    sets[1],
	}

	// Order-backed sales carry their product values on the linked order.
	if record.OrderID != nil {
		order, err := s.orderRepo.GetByID(*record.OrderID)
		if err == nil {
			orderSets, rerr := resolveFieldValues(s.fieldRepo, order.ProductFields, order.OrderFields)
			if rerr != nil {
				return nil, rerr
			}
			resolved.Order = &models.ResolvedOrder{
				Order:         *order,
				ProductFields: orderSets[0],
				OrderFields:   orderSets[1],
			}
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch linked order: %w", err)
		}
		// A deleted order leaves the record readable without the join.
	}
	return resolved, nil
}

// validateSoldLink enforces the one-link rule before anything is persisted.
func validateSoldLink(record *models.SoldRecord) error {
	hasInventory := record.InventoryID != nil
	hasOrder := record.OrderID != nil
	if hasInventory == hasOrder {
		return fmt.Errorf("%w", ErrSoldLink)
	}
	return nil
}

func buildPayments(reqs []PaymentRequest) ([]models.Payment, error) {
	payments := make([]models.Payment, 0, len(reqs))
	for _, req := range reqs {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be a positive number", ErrValidation)
		}
		payments = append(payments, newPayment(req))
	}
	return payments, nil
}

func newPayment(req PaymentRequest) models.Payment {
	payment := models.Payment{
		ID:         uuid.New(),
		Amount:     req.Amount,
		Date:       time.Now(),
		Mode:       req.Mode,
		PaidBy:     req.PaidBy,
		Reference:  req.Reference,
		Notes:      req.Notes,
		RecordedBy: req.RecordedBy,
	}
	if req.Date != nil {
		payment.Date = *req.Date
	}
	if payment.Mode == "" {
		payment.Mode = models.PaymentModeCash
	}
	if payment.PaidBy == "" {
		payment.PaidBy = "customer"
	}
	return payment
}

// FormatBillingID renders a sold sequence number as a billing ID.
func FormatBillingID(seq int64) string {
	return fmt.Sprintf("BILL_ID_%07d", seq)
}
