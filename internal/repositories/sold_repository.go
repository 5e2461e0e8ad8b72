package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bizconsole_backend/internal/models"

	"github.com/google/uuid"
)

// SoldRepository defines the database operations for sold (billing) records.
// Records are created once and only ever mutated by Update, which rewrites
// the payment list together with the derived financial columns.
type SoldRepository interface {
	Create(executor SQLExecutor, record *models.SoldRecord) error
	GetByID(id uuid.UUID) (*models.SoldRecord, error)
	GetAll() ([]models.SoldRecord, error)
	Update(executor SQLExecutor, record *models.SoldRecord) error
}

type soldRepository struct {
	db *sql.DB
}

// NewSoldRepository creates a new instance of SoldRepository.
func NewSoldRepository(db *sql.DB) SoldRepository {
	return &soldRepository{db: db}
}

const soldColumns = `id, billing_id, inventory_id, order_id, product_id, product_fields, sold_fields,
	inventory_price, selling_price, discount, final_price, payments, payment_status, profit,
	sold_at, created_at, updated_at`

func (r *soldRepository) Create(executor SQLExecutor, record *models.SoldRecord) error {
	productJSON, err := marshalFieldValues(record.ProductFields)
	if err != nil {
		return err
	}
	soldJSON, err := marshalFieldValues(record.SoldFields)
	if err != nil {
		return err
	}
	paymentsJSON, err := marshalPayments(record.Payments)
	if err != nil {
		return err
	}

	query := `INSERT INTO sold_records
	            (id, billing_id, inventory_id, order_id, product_id, product_fields, sold_fields,
	             inventory_price, selling_price, discount, final_price, payments, payment_status,
	             profit, sold_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	now := time.Now()
	if record.SoldAt.IsZero() {
		record.SoldAt = now
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = record.CreatedAt

	_, err = executor.Exec(query,
		record.ID, record.BillingID, record.InventoryID, record.OrderID, record.ProductID,
		productJSON, soldJSON, record.InventoryPrice, record.SellingPrice, record.Discount,
		record.FinalPrice, paymentsJSON, record.PaymentStatus, record.Profit,
		record.SoldAt, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: billing ID %q", ErrDuplicateKey, record.BillingID)
		}
		return fmt.Errorf("%w: creating sold record: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *soldRepository) GetByID(id uuid.UUID) (*models.SoldRecord, error) {
	query := `SELECT ` + soldColumns + ` FROM sold_records WHERE id = $1`
	record, err := scanSoldRecord(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *soldRepository) GetAll() ([]models.SoldRecord, error) {
	query := `SELECT ` + soldColumns + ` FROM sold_records ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sold records: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.SoldRecord{}
	for rows.Next() {
		record, err := scanSoldRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sold record rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}

func (r *soldRepository) Update(executor SQLExecutor, record *models.SoldRecord) error {
	paymentsJSON, err := marshalPayments(record.Payments)
	if err != nil {
		return err
	}

	query := `UPDATE sold_records
	          SET payments = $1, final_price = $2, payment_status = $3, profit = $4, updated_at = $5
	          WHERE id = $6`

	record.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		paymentsJSON, record.FinalPrice, record.PaymentStatus, record.Profit,
		record.UpdatedAt, record.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating sold record %s: %v", ErrDatabaseError, record.ID, err)
	}
	return requireRow(result, fmt.Sprintf("sold record %s", record.ID))
}

func scanSoldRecord(row rowScanner) (*models.SoldRecord, error) {
	record := &models.SoldRecord{}
	var productJSON, soldJSON, paymentsJSON []byte
	var inventoryID, orderID uuid.NullUUID

	err := row.Scan(
		&record.ID, &record.BillingID, &inventoryID, &orderID, &record.ProductID,
		&productJSON, &soldJSON, &record.InventoryPrice, &record.SellingPrice,
		&record.Discount, &record.FinalPrice, &paymentsJSON, &record.PaymentStatus,
		&record.Profit, &record.SoldAt, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanning sold record: %v", ErrDatabaseError, err)
	}

	if inventoryID.Valid {
		id := inventoryID.UUID
		record.InventoryID = &id
	}
	if orderID.Valid {
		id := orderID.UUID
		record.OrderID = &id
	}

	if err := json.Unmarshal(productJSON, &record.ProductFields); err != nil {
		return nil, fmt.Errorf("%w: decoding sold product fields: %v", ErrDatabaseError, err)
	}
	if err := json.Unmarshal(soldJSON, &record.SoldFields); err != nil {
		return nil, fmt.Errorf("%w: decoding sold fields: %v", ErrDatabaseError, err)
	}
	if err := json.Unmarshal(paymentsJSON, &record.Payments); err != nil {
		return nil, fmt.Errorf("%w: decoding payments: %v", ErrDatabaseError, err)
	}
	return record, nil
}

func marshalPayments(payments []models.Payment) ([]byte, error) {
	if payments == nil {
		payments = []models.Payment{}
	}
	data, err := json.Marshal(payments)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payments: %v", ErrDatabaseError, err)
	}
	return data, nil
}
