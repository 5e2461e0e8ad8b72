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

// InventoryRepository defines the database operations for inventory items.
type InventoryRepository interface {
	Create(executor SQLExecutor, item *models.InventoryItem) error
	GetByID(id uuid.UUID) (*models.InventoryItem, error)
	GetInStock() ([]models.InventoryItem, error)
	Update(executor SQLExecutor, item *models.InventoryItem) error
	SetInStock(executor SQLExecutor, id uuid.UUID, inStock bool) error
	// HardDelete removes the row entirely. Only the order-conversion
	// transaction uses this; every other removal is a SetInStock(false).
	HardDelete(executor SQLExecutor, id uuid.UUID) (int64, error)
}

type inventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, product_id, base_cost_price, fields, in_stock, created_at, updated_at`

func (r *inventoryRepository) Create(executor SQLExecutor, item *models.InventoryItem) error {
	fieldsJSON, err := marshalFieldValues(item.Fields)
	if err != nil {
		return err
	}

	query := `INSERT INTO inventory_items
	            (id, product_id, base_cost_price, fields, in_stock, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	item.UpdatedAt = item.CreatedAt

	_, err = executor.Exec(query,
		item.ID, item.ProductID, item.BaseCostPrice, fieldsJSON, item.InStock,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product ID %q", ErrDuplicateKey, item.ProductID)
		}
		return fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *inventoryRepository) GetByID(id uuid.UUID) (*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`
	item, err := scanInventoryItem(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *inventoryRepository) GetInStock() ([]models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE in_stock = TRUE ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying inventory items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) Update(executor SQLExecutor, item *models.InventoryItem) error {
	fieldsJSON, err := marshalFieldValues(item.Fields)
	if err != nil {
		return err
	}

	query := `UPDATE inventory_items
	          SET base_cost_price = $1, fields = $2, updated_at = $3
	          WHERE id = $4`

	item.UpdatedAt = time.Now()
	result, err := executor.Exec(query, item.BaseCostPrice, fieldsJSON, item.UpdatedAt, item.ID)
	if err != nil {
		return fmt.Errorf("%w: updating inventory item %s: %v", ErrDatabaseError, item.ID, err)
	}
	return requireRow(result, fmt.Sprintf("inventory item %s", item.ID))
}

func (r *inventoryRepository) SetInStock(executor SQLExecutor, id uuid.UUID, inStock bool) error {
	query := `UPDATE inventory_items SET in_stock = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, inStock, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating stock state for %s: %v", ErrDatabaseError, id, err)
	}
	return requireRow(result, fmt.Sprintf("inventory item %s", id))
}

func (r *inventoryRepository) HardDelete(executor SQLExecutor, id uuid.UUID) (int64, error) {
	result, err := executor.Exec(`DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting inventory item %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected for inventory delete %s: %v", ErrDatabaseError, id, err)
	}
	return rowsAffected, nil
}

func scanInventoryItem(row rowScanner) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	var fieldsJSON []byte

	err := row.Scan(
		&item.ID, &item.ProductID, &item.BaseCostPrice, &fieldsJSON, &item.InStock,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
	}

	if err := json.Unmarshal(fieldsJSON, &item.Fields); err != nil {
		return nil, fmt.Errorf("%w: decoding inventory fields: %v", ErrDatabaseError, err)
	}
	return item, nil
}

func marshalFieldValues(values []models.FieldValue) ([]byte, error) {
	if values == nil {
		values = []models.FieldValue{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding field values: %v", ErrDatabaseError, err)
	}
	return data, nil
}

// requireRow maps a zero-row write to ErrNotFound.
func requireRow(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for %s: %v", ErrDatabaseError, what, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
