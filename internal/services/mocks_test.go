package services

import (
	"bizconsole_backend/internal/models"
	"bizconsole_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory repository fakes. Only the behavior the service tests exercise is
// implemented; everything else is an honest no-op.

type fakeFieldRepo struct {
	fields map[uuid.UUID]*models.InputField

	createErr error
	created   []*models.InputField
	updated   []*models.InputField
	deleted   []uuid.UUID
}

func newFakeFieldRepo(fields ...*models.InputField) *fakeFieldRepo {
	repo := &fakeFieldRepo{fields: map[uuid.UUID]*models.InputField{}}
	for _, f := range fields {
		repo.fields[f.ID] = f
	}
	return repo
}

func (r *fakeFieldRepo) Create(_ repositories.SQLExecutor, field *models.InputField) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.fields[field.ID] = field
	r.created = append(r.created, field)
	return nil
}

func (r *fakeFieldRepo) GetByID(id uuid.UUID) (*models.InputField, error) {
	field, ok := r.fields[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *field
	return &copied, nil
}

func (r *fakeFieldRepo) GetByLabel(label string) (*models.InputField, error) {
	for _, f := range r.fields {
		if f.Label == label {
			copied := *f
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeFieldRepo) GetAll() ([]models.InputField, error) {
	out := make([]models.InputField, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, *f)
	}
	return out, nil
}

func (r *fakeFieldRepo) GetByIDs(ids []uuid.UUID) (map[uuid.UUID]*models.InputField, error) {
	out := map[uuid.UUID]*models.InputField{}
	for _, id := range ids {
		if f, ok := r.fields[id]; ok {
			copied := *f
			out[id] = &copied
		}
	}
	return out, nil
}

func (r *fakeFieldRepo) Update(_ repositories.SQLExecutor, field *models.InputField) error {
	if _, ok := r.fields[field.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.fields[field.ID] = field
	r.updated = append(r.updated, field)
	return nil
}

func (r *fakeFieldRepo) Delete(_ repositories.SQLExecutor, id uuid.UUID) error {
	if _, ok := r.fields[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.fields, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeInventoryRepo struct {
	items map[uuid.UUID]*models.InventoryItem

	created        []*models.InventoryItem
	setInStock     []uuid.UUID
	setInStockFlag []bool
}

func newFakeInventoryRepo(items ...*models.InventoryItem) *fakeInventoryRepo {
	repo := &fakeInventoryRepo{items: map[uuid.UUID]*models.InventoryItem{}}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *fakeInventoryRepo) Create(_ repositories.SQLExecutor, item *models.InventoryItem) error {
	r.items[item.ID] = item
	r.created = append(r.created, item)
	return nil
}

func (r *fakeInventoryRepo) GetByID(id uuid.UUID) (*models.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeInventoryRepo) GetInStock() ([]models.InventoryItem, error) {
	out := []models.InventoryItem{}
	for _, item := range r.items {
		if item.InStock {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) Update(_ repositories.SQLExecutor, item *models.InventoryItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeInventoryRepo) SetInStock(_ repositories.SQLExecutor, id uuid.UUID, inStock bool) error {
	item, ok := r.items[id]
	if !ok {
		return repositories.ErrNotFound
	}
	item.InStock = inStock
	r.setInStock = append(r.setInStock, id)
	r.setInStockFlag = append(r.setInStockFlag, inStock)
	return nil
}

func (r *fakeInventoryRepo) HardDelete(_ repositories.SQLExecutor, id uuid.UUID) (int64, error) {
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*models.Order

	created []*models.Order
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: map[uuid.UUID]*models.Order{}}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (r *fakeOrderRepo) Create(_ repositories.SQLExecutor, order *models.Order) error {
	r.orders[order.ID] = order
	r.created = append(r.created, order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id uuid.UUID) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetAll() ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(_ repositories.SQLExecutor, order *models.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ repositories.SQLExecutor, id uuid.UUID, status models.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(_ repositories.SQLExecutor, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeSoldRepo struct {
	records map[uuid.UUID]*models.SoldRecord

	created []*models.SoldRecord
	updated []*models.SoldRecord
}

func newFakeSoldRepo(records ...*models.SoldRecord) *fakeSoldRepo {
	repo := &fakeSoldRepo{records: map[uuid.UUID]*models.SoldRecord{}}
	for _, rec := range records {
		repo.records[rec.ID] = rec
	}
	return repo
}

func (r *fakeSoldRepo) Create(_ repositories.SQLExecutor, record *models.SoldRecord) error {
	r.records[record.ID] = record
	r.created = append(r.created, record)
	return nil
}

func (r *fakeSoldRepo) GetByID(id uuid.UUID) (*models.SoldRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeSoldRepo) GetAll() ([]models.SoldRecord, error) {
	out := []models.SoldRecord{}
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeSoldRepo) Update(_ repositories.SQLExecutor, record *models.SoldRecord) error {
	if _, ok := r.records[record.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.records[record.ID] = record
	r.updated = append(r.updated, record)
	return nil
}

type fakeCounterRepo struct {
	seqs map[string]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{seqs: map[string]int64{}}
}

func (r *fakeCounterRepo) Next(_ repositories.SQLExecutor, name string) (int64, error) {
	r.seqs[name]++
	return r.seqs[name], nil
}
