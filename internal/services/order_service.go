package services

import (
	"database/sql"
	"errors"
	"fmt"

	"bizconsole_backend/internal/models"
	"bizconsole_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// CreateOrderRequest carries a new order. When InventoryID is set the order
// is a conversion: the source inventory item is removed in the same
// transaction, all-or-nothing.
type CreateOrderRequest struct {
	InventoryID     *uuid.UUID          `json:"inventoryId"`
	ProductFields   []models.FieldValue `json:"productFields"`
	OrderFields     []models.FieldValue `json:"orderFields"`
	BuyingCostPrice decimal.Decimal     `json:"buyingCostPrice"`
	Status          models.OrderStatus  `json:"status"`
}

// UpdateOrderRequest replaces an order's mutable attributes wholesale.
type UpdateOrderRequest struct {
	ProductFields   []models.FieldValue `json:"productFields"`
	OrderFields     []models.FieldValue `json:"orderFields"`
	BuyingCostPrice decimal.Decimal     `json:"buyingCostPrice"`
	Status          models.OrderStatus  `json:"status"`
}

// UpdateOrderStatusRequest carries a status change.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// OrderService manages orders and the inventory-to-order conversion.
type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*models.ResolvedOrder, error)
	GetOrders() ([]models.ResolvedOrder, error)
	GetOrderByID(id uuid.UUID) (*models.ResolvedOrder, error)
	UpdateOrder(id uuid.UUID, req UpdateOrderRequest) (*models.ResolvedOrder, error)
	UpdateOrderStatus(id uuid.UUID, req UpdateOrderStatusRequest) (*models.ResolvedOrder, error)
	DeleteOrder(id uuid.UUID) error
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	inventoryRepo repositories.InventoryRepository
	fieldRepo     repositories.FieldRepository
	counterRepo   repositories.CounterRepository
	db            *sql.DB
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	ir repositories.InventoryRepository,
	fr repositories.FieldRepository,
	cr repositories.CounterRepository,
	db *sql.DB,
) OrderService {
	return &orderService{
		orderRepo:     or,
		inventoryRepo: ir,
		fieldRepo:     fr,
		counterRepo:   cr,
		db:            db,
	}
}

func (s *orderService) CreateOrder(req CreateOrderRequest) (*models.ResolvedOrder, error) {
	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}
	if req.BuyingCostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: buyingCostPrice must not be negative", ErrValidation)
	}
	if err := validateFieldValues(s.fieldRepo, req.ProductFields, req.OrderFields); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	seq, err := s.counterRepo.Next(tx, "orders")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate order ID: %w", err)
	}

	order := &models.Order{
		ID:                uuid.New(),
		OrderID:           FormatOrderID(seq),
		BuyingCostPrice:   req.BuyingCostPrice,
		ProductFields:     req.ProductFields,
		OrderFields:       req.OrderFields,
		Status:            status,
		SourceInventoryID: req.InventoryID,
	}
	if err := s.orderRepo.Create(tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}

	// Conversion: the source item leaves inventory for good, inside this
	// transaction. A missing item aborts the whole creation.
	if req.InventoryID != nil {
		rowsAffected, err := s.inventoryRepo.HardDelete(tx, *req.InventoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to remove source inventory item: %w", err)
		}
		if rowsAffected == 0 {
			return nil, ErrInventoryNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return s.resolve(order)
}

func (s *orderService) GetOrders() ([]models.ResolvedOrder, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	resolved := make([]models.ResolvedOrder, 0, len(orders))
	for i := range orders {
		r, err := s.resolve(&orders[i])
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *r)
	}
	return resolved, nil
}

func (s *orderService) GetOrderByID(id uuid.UUID) (*models.ResolvedOrder, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "failed to fetch order")
	}
	return s.resolve(order)
}

func (s *orderService) UpdateOrder(id uuid.UUID, req UpdateOrderRequest) (*models.ResolvedOrder, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "failed to fetch order")
	}

	if !models.ValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}
	if req.BuyingCostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: buyingCostPrice must not be negative", ErrValidation)
	}
	if err := validateFieldValues(s.fieldRepo, req.ProductFields, req.OrderFields); err != nil {
		return nil, err
	}

	order.ProductFields = req.ProductFields
	order.OrderFields = req.OrderFields
	order.BuyingCostPrice = req.BuyingCostPrice
	order.Status = req.Status

	if err := s.orderRepo.Update(s.db, order); err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "failed to update order")
	}
	return s.resolve(order)
}

func (s *orderService) UpdateOrderStatus(id uuid.UUID, req UpdateOrderStatusRequest) (*models.ResolvedOrder, error) {
	// Enum membership only; the console deliberately allows any
	// pending/completed/cancelled move in either direction.
	if !models.ValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOrderStatus, req.Status)
	}

	if err := s.orderRepo.UpdateStatus(s.db, id, req.Status); err != nil {
		return nil, mapNotFound(err, ErrOrderNotFound, "failed to update order status")
	}
	return s.GetOrderByID(id)
}

func (s *orderService) DeleteOrder(id uuid.UUID) error {
	if err := s.orderRepo.Delete(s.db, id); err != nil {
		return mapNotFound(err, ErrOrderNotFound, "failed to delete order")
	}
	return nil
}

func (s *orderService) resolve(order *models.Order) (*models.ResolvedOrder, error) {
	sets, err := resolveFieldValues(s.fieldRepo, order.ProductFields, order.OrderFields)
	if err != nil {
		return nil, err
	}
	return &models.ResolvedOrder{
		Order:         *order,
		ProductFields: sets[0],
		OrderFields:   sets[1],
	}, nil
}

// FormatOrderID renders an order sequence number as an order ID.
func FormatOrderID(seq int64) string {
	return fmt.Sprintf("ORD_ID_%06d", seq)
}
