package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bizconsole_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FieldRepository defines the database operations for the field catalog.
type FieldRepository interface {
	Create(executor SQLExecutor, field *models.InputField) error
	GetByID(id uuid.UUID) (*models.InputField, error)
	GetByLabel(label string) (*models.InputField, error)
	GetAll() ([]models.InputField, error)
	GetByIDs(ids []uuid.UUID) (map[uuid.UUID]*models.InputField, error)
	Update(executor SQLExecutor, field *models.InputField) error
	Delete(executor SQLExecutor, id uuid.UUID) error
}

type fieldRepository struct {
	db *sql.DB
}

// NewFieldRepository creates a new instance of FieldRepository.
func NewFieldRepository(db *sql.DB) FieldRepository {
	return &fieldRepository{db: db}
}

const fieldColumns = `id, label, type, number_sub_type, file_type, select_options, show_in, is_active, created_at, updated_at`

func (r *fieldRepository) Create(executor SQLExecutor, field *models.InputField) error {
	optionsJSON, showInJSON, err := marshalFieldDocs(field)
	if err != nil {
		return err
	}

	query := `INSERT INTO input_fields
	            (id, label, type, number_sub_type, file_type, select_options, show_in, is_active,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if field.CreatedAt.IsZero() {
		field.CreatedAt = time.Now()
	}
	field.UpdatedAt = field.CreatedAt

	_, err = executor.Exec(query,
		field.ID, field.Label, field.Type, field.NumberSubType, field.FileType,
		optionsJSON, showInJSON, field.IsActive, field.CreatedAt, field.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: field label %q", ErrDuplicateKey, field.Label)
		}
		return fmt.Errorf("%w: creating input field: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *fieldRepository) GetByID(id uuid.UUID) (*models.InputField, error) {
	query := `SELECT ` + fieldColumns + ` FROM input_fields WHERE id = $1`
	return r.scanOne(r.db.QueryRow(query, id))
}

func (r *fieldRepository) GetByLabel(label string) (*models.InputField, error) {
	query := `SELECT ` + fieldColumns + ` FROM input_fields WHERE label = $1`
	return r.scanOne(r.db.QueryRow(query, label))
}

func (r *fieldRepository) GetAll() ([]models.InputField, error) {
	query := `SELECT ` + fieldColumns + ` FROM input_fields ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying input fields: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	fields := []models.InputField{}
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		fields = append(fields, *field)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating input field rows: %v", ErrDatabaseError, err)
	}
	return fields, nil
}

func (r *fieldRepository) GetByIDs(ids []uuid.UUID) (map[uuid.UUID]*models.InputField, error) {
	result := make(map[uuid.UUID]*models.InputField, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + fieldColumns + ` FROM input_fields WHERE id = ANY($1)`
	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: querying input fields by ids: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		result[field.ID] = field
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating input field rows: %v", ErrDatabaseError, err)
	}
	return result, nil
}

func (r *fieldRepository) Update(executor SQLExecutor, field *models.InputField) error {
	optionsJSON, showInJSON, err := marshalFieldDocs(field)
	if err != nil {
		return err
	}

	query := `UPDATE input_fields
	          SET label = $1, type = $2, number_sub_type = $3, file_type = $4,
	              select_options = $5, show_in = $6, is_active = $7, updated_at = $8
	          WHERE id = $9`

	field.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		field.Label, field.Type, field.NumberSubType, field.FileType,
		optionsJSON, showInJSON, field.IsActive, field.UpdatedAt, field.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: field label %q", ErrDuplicateKey, field.Label)
		}
		return fmt.Errorf("%w: updating input field %s: %v", ErrDatabaseError, field.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for input field update %s: %v", ErrDatabaseError, field.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *fieldRepository) Delete(executor SQLExecutor, id uuid.UUID) error {
	result, err := executor.Exec(`DELETE FROM input_fields WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting input field %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for input field delete %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *fieldRepository) scanOne(row *sql.Row) (*models.InputField, error) {
	field, err := scanField(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return field, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanField(row rowScanner) (*models.InputField, error) {
	field := &models.InputField{}
	var optionsJSON, showInJSON []byte

	err := row.Scan(
		&field.ID, &field.Label, &field.Type, &field.NumberSubType, &field.FileType,
		&optionsJSON, &showInJSON, &field.IsActive, &field.CreatedAt, &field.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanning input field: %v", ErrDatabaseError, err)
	}

	if err := json.Unmarshal(optionsJSON, &field.SelectOptions); err != nil {
		return nil, fmt.Errorf("%w: decoding select options: %v", ErrDatabaseError, err)
	}
	if err := json.Unmarshal(showInJSON, &field.ShowIn); err != nil {
		return nil, fmt.Errorf("%w: decoding section config: %v", ErrDatabaseError, err)
	}
	return field, nil
}

func marshalFieldDocs(field *models.InputField) ([]byte, []byte, error) {
	if field.SelectOptions == nil {
		field.SelectOptions = []models.SelectOption{}
	}
	optionsJSON, err := json.Marshal(field.SelectOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: encoding select options: %v", ErrDatabaseError, err)
	}
	showInJSON, err := json.Marshal(field.ShowIn)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: encoding section config: %v", ErrDatabaseError, err)
	}
	return optionsJSON, showInJSON, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
