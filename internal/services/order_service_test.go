package services

import (
	"testing"

	"bizconsole_backend/internal/models"
	"bizconsole_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRejectsInvalidStatus(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeInventoryRepo(), newFakeFieldRepo(), newFakeCounterRepo(), nil)

	_, err := svc.CreateOrder(CreateOrderRequest{Status: "shipped"})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestCreateOrderRejectsNegativeCost(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeInventoryRepo(), newFakeFieldRepo(), newFakeCounterRepo(), nil)

	_, err := svc.CreateOrder(CreateOrderRequest{BuyingCostPrice: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderRejectsUnknownFieldRef(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeInventoryRepo(), newFakeFieldRepo(), newFakeCounterRepo(), nil)

	_, err := svc.CreateOrder(CreateOrderRequest{
		OrderFields: []models.FieldValue{{FieldRef: uuid.New(), Value: models.TextValue("x")}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderDefaultsToPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(orderRepo, newFakeInventoryRepo(), newFakeFieldRepo(), newFakeCounterRepo(), db)

	order, err := svc.CreateOrder(CreateOrderRequest{BuyingCostPrice: decimal.NewFromInt(100)})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "ORD_ID_000001", order.OrderID)
	assert.Nil(t, order.SourceInventoryID)
	require.Len(t, orderRepo.created, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderConversionRemovesSourceItemAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	inventoryID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO counters").
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(7)))
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM inventory_items").
		WithArgs(inventoryID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewInventoryRepository(db),
		newFakeFieldRepo(),
		repositories.NewCounterRepository(),
		db,
	)

	order, err := svc.CreateOrder(CreateOrderRequest{
		InventoryID:     &inventoryID,
		BuyingCostPrice: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD_ID_000007", order.OrderID)
	require.NotNil(t, order.SourceInventoryID)
	assert.Equal(t, inventoryID, *order.SourceInventoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderConversionRollsBackWhenSourceMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	inventoryID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO counters").
		WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(8)))
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM inventory_items").
		WithArgs(inventoryID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	svc := NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewInventoryRepository(db),
		newFakeFieldRepo(),
		repositories.NewCounterRepository(),
		db,
	)

	_, err = svc.CreateOrder(CreateOrderRequest{
		InventoryID:     &inventoryID,
		BuyingCostPrice: decimal.NewFromInt(300),
	})
	assert.ErrorIs(t, err, ErrInventoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeInventoryRepo(), newFakeFieldRepo(), newFakeCounterRepo(), nil)

	_, err := svc.UpdateOrderStatus(uuid.New(), UpdateOrderStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestUpdateOrderStatusAllowsAnyEnumMove(t *testing.T) {
	order := &models.Order{ID: uuid.New(), OrderID: "ORD_ID_000001", Status: models.OrderStatusCompleted}
	orderRepo := newFakeOrderRepo(order)
	svc := NewOrderService(orderRepo, newFakeInventoryRepo(), newFakeFieldRepo(), newFakeCounterRepo(), nil)

	// Completed back to pending is a legal move.
	updated, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: models.OrderStatusPending})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeInventoryRepo(), newFakeFieldRepo(), newFakeCounterRepo(), nil)

	_, err := svc.UpdateOrder(uuid.New(), UpdateOrderRequest{Status: models.OrderStatusPending})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteOrderNotFound(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeInventoryRepo(), newFakeFieldRepo(), newFakeCounterRepo(), nil)
	assert.ErrorIs(t, svc.DeleteOrder(uuid.New()), ErrOrderNotFound)
}

func TestFormatOrderID(t *testing.T) {
	assert.Equal(t, "ORD_ID_000001", FormatOrderID(1))
	assert.Equal(t, "ORD_ID_001234", FormatOrderID(1234))
}
