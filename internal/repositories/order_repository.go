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

// OrderRepository defines the database operations for orders.
type OrderRepository interface {
	Create(executor SQLExecutor, order *models.Order) error
	GetByID(id uuid.UUID) (*models.Order, error)
	GetAll() ([]models.Order, error)
	Update(executor SQLExecutor, order *models.Order) error
	UpdateStatus(executor SQLExecutor, id uuid.UUID, status models.OrderStatus) error
	Delete(executor SQLExecutor, id uuid.UUID) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_id, buying_cost_price, product_fields, order_fields, status, source_inventory_id, created_at, updated_at`

func (r *orderRepository) Create(executor SQLExecutor, order *models.Order) error {
	productJSON, err := marshalFieldValues(order.ProductFields)
	if err != nil {
		return err
	}
	orderJSON, err := marshalFieldValues(order.OrderFields)
	if err != nil {
		return err
	}

	query := `INSERT INTO orders
	            (id, order_id, buying_cost_price, product_fields, order_fields, status,
	             source_inventory_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = order.CreatedAt

	_, err = executor.Exec(query,
		order.ID, order.OrderID, order.BuyingCostPrice, productJSON, orderJSON,
		order.Status, order.SourceInventoryID, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order ID %q", ErrDuplicateKey, order.OrderID)
		}
		return fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *orderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) Update(executor SQLExecutor, order *models.Order) error {
	productJSON, err := marshalFieldValues(order.ProductFields)
	if err != nil {
		return err
	}
	orderJSON, err := marshalFieldValues(order.OrderFields)
	if err != nil {
		return err
	}

	query := `UPDATE orders
	          SET buying_cost_price = $1, product_fields = $2, order_fields = $3,
	              status = $4, updated_at = $5
	          WHERE id = $6`

	order.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		order.BuyingCostPrice, productJSON, orderJSON, order.Status, order.UpdatedAt, order.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating order %s: %v", ErrDatabaseError, order.ID, err)
	}
	return requireRow(result, fmt.Sprintf("order %s", order.ID))
}

func (r *orderRepository) UpdateStatus(executor SQLExecutor, id uuid.UUID, status models.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating status for order %s: %v", ErrDatabaseError, id, err)
	}
	return requireRow(result, fmt.Sprintf("order %s", id))
}

func (r *orderRepository) Delete(executor SQLExecutor, id uuid.UUID) error {
	result, err := executor.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting order %s: %v", ErrDatabaseError, id, err)
	}
	return requireRow(result, fmt.Sprintf("order %s", id))
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}
	var productJSON, orderJSON []byte
	var sourceID uuid.NullUUID

	err := row.Scan(
		&order.ID, &order.OrderID, &order.BuyingCostPrice, &productJSON, &orderJSON,
		&order.Status, &sourceID, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
	}
	if sourceID.Valid {
		id := sourceID.UUID
		order.SourceInventoryID = &id
	}

	if err := json.Unmarshal(productJSON, &order.ProductFields); err != nil {
		return nil, fmt.Errorf("%w: decoding order product fields: %v", ErrDatabaseError, err)
	}
	if err := json.Unmarshal(orderJSON, &order.OrderFields); err != nil {
		return nil, fmt.Errorf("%w: decoding order fields: %v", ErrDatabaseError, err)
	}
	return order, nil
}
