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

var ErrInventoryNotFound = errors.New("inventory item not found")

// CreateInventoryRequest carries a new stock item.
type CreateInventoryRequest struct {
	Fields        []models.FieldValue `json:"fields"`
	BaseCostPrice *decimal.Decimal    `json:"baseCostPrice"`
}

// UpdateInventoryRequest replaces an item's fields wholesale; the cost price
// is only touched when provided.
type UpdateInventoryRequest struct {
	Fields        []models.FieldValue `json:"fields"`
	BaseCostPrice *decimal.Decimal    `json:"baseCostPrice"`
}

// InventoryService manages unsold stock items.
type InventoryService interface {
	Create(req CreateInventoryRequest) (*models.ResolvedInventoryItem, error)
	GetItems() ([]models.ResolvedInventoryItem, error)
	GetItemByID(id uuid.UUID) (*models.ResolvedInventoryItem, error)
	Update(id uuid.UUID, req UpdateInventoryRequest) (*models.ResolvedInventoryItem, error)
	SoftDelete(id uuid.UUID) error
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	fieldRepo     repositories.FieldRepository
	counterRepo   repositories.CounterRepository
	db            *sql.DB
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	ir repositories.InventoryRepository,
	fr repositories.FieldRepository,
	cr repositories.CounterRepository,
	db *sql.DB,
) InventoryService {
	return &inventoryService{
		inventoryRepo: ir,
		fieldRepo:     fr,
		counterRepo:   cr,
		db:            db,
	}
}

func (s *inventoryService) Create(req CreateInventoryRequest) (*models.ResolvedInventoryItem, error) {
	if len(req.Fields) == 0 {
		return nil, fmt.Errorf("%w: at least one field is required", ErrValidation)
	}
	if req.BaseCostPrice == nil {
		return nil, fmt.Errorf("%w: baseCostPrice is required", ErrValidation)
	}
	if req.BaseCostPrice.IsNegative() {
		return nil, fmt.Errorf("%w: baseCostPrice must not be negative", ErrValidation)
	}
	if err := validateFieldValues(s.fieldRepo, req.Fields); err != nil {
		return nil, err
	}

	seq, err := s.counterRepo.Next(s.db, "inventory")
	if err != nil {
		return nil, fmt.Errorf("failed to allocate product ID: %w", err)
	}

	item := &models.InventoryItem{
		ID:            uuid.New(),
		ProductID:     FormatProductID(seq),
		BaseCostPrice: *req.BaseCostPrice,
		Fields:        req.Fields,
		InStock:       true,
	}
	if err := s.inventoryRepo.Create(s.db, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return s.resolve(item)
}

func (s *inventoryService) GetItems() ([]models.ResolvedInventoryItem, error) {
	items, err := s.inventoryRepo.GetInStock()
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory items: %w", err)
	}

	resolved := make([]models.ResolvedInventoryItem, 0, len(items))
	for i := range items {
		r, err := s.resolve(&items[i])
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *r)
	}
	return resolved, nil
}

func (s *inventoryService) GetItemByID(id uuid.UUID) (*models.ResolvedInventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrInventoryNotFound, "failed to fetch inventory item")
	}
	return s.resolve(item)
}

func (s *inventoryService) Update(id uuid.UUID, req UpdateInventoryRequest) (*models.ResolvedInventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrInventoryNotFound, "failed to fetch inventory item")
	}

	if err := validateFieldValues(s.fieldRepo, req.Fields); err != nil {
		return nil, err
	}

	item.Fields = req.Fields
	if req.BaseCostPrice != nil {
		if req.BaseCostPrice.IsNegative() {
			return nil, fmt.Errorf("%w: baseCostPrice must not be negative", ErrValidation)
		}
		item.BaseCostPrice = *req.BaseCostPrice
	}

	if err := s.inventoryRepo.Update(s.db, item); err != nil {
		return nil, mapNotFound(err, ErrInventoryNotFound, "failed to update inventory item")
	}
	return s.resolve(item)
}

func (s *inventoryService) SoftDelete(id uuid.UUID) error {
	if err := s.inventoryRepo.SetInStock(s.db, id, false); err != nil {
		return mapNotFound(err, ErrInventoryNotFound, "failed to mark item out of stock")
	}
	return nil
}

func (s *inventoryService) resolve(item *models.InventoryItem) (*models.ResolvedInventoryItem, error) {
	sets, err := resolveFieldValues(s.fieldRepo, item.Fields)
	if err != nil {
		return nil, err
	}
	return &models.ResolvedInventoryItem{InventoryItem: *item, Fields: sets[0]}, nil
}

// FormatProductID renders an inventory sequence number as a product ID.
func FormatProductID(seq int64) string {
	return fmt.Sprintf("PRD_%04d", seq)
}
