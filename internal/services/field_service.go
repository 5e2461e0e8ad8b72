package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bizconsole_backend/internal/models"
	"bizconsole_backend/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrFieldNotFound  = errors.New("input field not found")
	ErrDuplicateLabel = errors.New("field label already exists")
	ErrNotSelectField = errors.New("field is not a select field")
)

// CreateFieldRequest carries a new field definition.
type CreateFieldRequest struct {
	Label         string                 `json:"label"`
	Type          models.FieldType       `json:"type"`
	NumberSubType *models.NumberSubType  `json:"numberSubType"`
	FileType      *models.FileType       `json:"fileType"`
	SelectOptions []models.SelectOption  `json:"selectOptions"`
	ShowIn        models.ShowIn          `json:"showIn"`
}

// UpdateFieldRequest carries a full replacement for a field's mutable
// attributes. There is no partial merge.
type UpdateFieldRequest struct {
	Label         string                 `json:"label"`
	Type          models.FieldType       `json:"type"`
	NumberSubType *models.NumberSubType  `json:"numberSubType"`
	FileType      *models.FileType       `json:"fileType"`
	SelectOptions []models.SelectOption  `json:"selectOptions"`
	ShowIn        models.ShowIn          `json:"showIn"`
	IsActive      *bool                  `json:"isActive"`
}

// FieldService is the field catalog: user-defined field definitions with
// their per-section visibility, ordering and overview configuration.
type FieldService interface {
	CreateField(req CreateFieldRequest) (*models.InputField, error)
	GetFields() ([]models.InputField, error)
	UpdateField(id uuid.UUID, req UpdateFieldRequest) (*models.InputField, error)
	UpdateSelectOptions(fieldID uuid.UUID, options []models.SelectOption) (*models.InputField, error)
	DeleteField(id uuid.UUID) error
}

type fieldService struct {
	fieldRepo repositories.FieldRepository
	db        *sql.DB
}

// NewFieldService creates a new instance of FieldService.
func NewFieldService(fr repositories.FieldRepository, db *sql.DB) FieldService {
	return &fieldService{fieldRepo: fr, db: db}
}

func (s *fieldService) CreateField(req CreateFieldRequest) (*models.InputField, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: field label is required", ErrValidation)
	}

	fieldType := req.Type
	if fieldType == "" {
		fieldType = models.FieldTypeText
	}
	if !models.ValidFieldType(fieldType) {
		return nil, fmt.Errorf("%w: unknown field type %q", ErrValidation, fieldType)
	}

	// Duplicate check is a case-sensitive exact match; the unique index is
	// the backstop under concurrent creates.
	if _, err := s.fieldRepo.GetByLabel(label); err == nil {
		return nil, ErrDuplicateLabel
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check label uniqueness: %w", err)
	}

	field := &models.InputField{
		ID:            uuid.New(),
		Label:         label,
		Type:          fieldType,
		NumberSubType: req.NumberSubType,
		FileType:      req.FileType,
		SelectOptions: req.SelectOptions,
		ShowIn:        req.ShowIn,
		IsActive:      true,
	}
	normalizeField(field)

	if err := s.fieldRepo.Create(s.db, field); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateLabel
		}
		return nil, fmt.Errorf("failed to create input field: %w", err)
	}
	return field, nil
}

func (s *fieldService) GetFields() ([]models.InputField, error) {
	fields, err := s.fieldRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get input fields: %w", err)
	}
	return fields, nil
}

func (s *fieldService) UpdateField(id uuid.UUID, req UpdateFieldRequest) (*models.InputField, error) {
	field, err := s.fieldRepo.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err, ErrFieldNotFound, "failed to fetch input field")
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: field label is required", ErrValidation)
	}
	if !models.ValidFieldType(req.Type) {
		return nil, fmt.Errorf("%w: unknown field type %q", ErrValidation, req.Type)
	}
	if label != field.Label {
		if _, err := s.fieldRepo.GetByLabel(label); err == nil {
			return nil, ErrDuplicateLabel
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check label uniqueness: %w", err)
		}
	}

	field.Label = label
	field.Type = req.Type
	field.NumberSubType = req.NumberSubType
	field.FileType = req.FileType
	field.SelectOptions = req.SelectOptions
	field.ShowIn = req.ShowIn
	if req.IsActive != nil {
		field.IsActive = *req.IsActive
	}
	normalizeField(field)

	if err := s.fieldRepo.Update(s.db, field); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateLabel
		}
		return nil, mapNotFound(err, ErrFieldNotFound, "failed to update input field")
	}
	return field, nil
}

func (s *fieldService) UpdateSelectOptions(fieldID uuid.UUID, options []models.SelectOption) (*models.InputField, error) {
	field, err := s.fieldRepo.GetByID(fieldID)
	if err != nil {
		return nil, mapNotFound(err, ErrFieldNotFound, "failed to fetch input field")
	}
	if field.Type != models.FieldTypeSelect {
		return nil, ErrNotSelectField
	}

	field.SelectOptions = options
	ensureOptionIDs(field)

	if err := s.fieldRepo.Update(s.db, field); err != nil {
		return nil, mapNotFound(err, ErrFieldNotFound, "failed to update select options")
	}
	return field, nil
}

func (s *fieldService) DeleteField(id uuid.UUID) error {
	// Hard delete with no referential check: values already written keep
	// their ref and render as an unknown field.
	if err := s.fieldRepo.Delete(s.db, id); err != nil {
		return mapNotFound(err, ErrFieldNotFound, "failed to delete input field")
	}
	return nil
}

// normalizeField strips attributes that do not belong to the field's type
// and enforces the section invariant: a field hidden in a section cannot
// appear in that section's overview.
func normalizeField(field *models.InputField) {
	if field.Type != models.FieldTypeNumber {
		field.NumberSubType = nil
	}
	if field.Type != models.FieldTypeFile {
		field.FileType = nil
	}
	if field.Type != models.FieldTypeSelect {
		field.SelectOptions = []models.SelectOption{}
	}
	ensureOptionIDs(field)

	field.ShowIn.Inventory = normalizeSection(field.ShowIn.Inventory)
	field.ShowIn.Orders = normalizeSection(field.ShowIn.Orders)
	field.ShowIn.Sold = normalizeSection(field.ShowIn.Sold)
}

func normalizeSection(cfg models.SectionConfig) models.SectionConfig {
	if !cfg.Show {
		return models.SectionConfig{}
	}
	if !cfg.Overview.Show {
		cfg.Overview = models.OverviewConfig{}
	}
	return cfg
}

func ensureOptionIDs(field *models.InputField) {
	for i := range field.SelectOptions {
		if field.SelectOptions[i].ID == uuid.Nil {
			field.SelectOptions[i].ID = uuid.New()
		}
		field.SelectOptions[i].Label = strings.TrimSpace(field.SelectOptions[i].Label)
	}
}
