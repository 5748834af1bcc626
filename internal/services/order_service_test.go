package services

import (
	"database/sql"
	"testing"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func intPtr(n int) *int { return &n }

func TestCreateOrderComputesItemAndOrderTotals(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var createdOrder models.Order
	var createdItems []models.OrderItem
	repo := &fakeOrderRepo{
		createOrder: func(order *models.Order) (int64, error) {
			order.ID = 10
			createdOrder = *order
			return 10, nil
		},
		createOrderItem: func(item *models.OrderItem) (int64, error) {
			item.ID = int64(len(createdItems) + 1)
			createdItems = append(createdItems, *item)
			return item.ID, nil
		},
		getOrderByID: func(id int64) (*models.Order, error) {
			copied := createdOrder
			return &copied, nil
		},
		getOrderItemsByOID: func(orderID int64) ([]models.OrderItem, error) {
			return createdItems, nil
		},
	}
	svc := NewOrderService(repo, db)

	order, err := svc.CreateOrder(nil, CreateOrderRequest{
		CustomerName: "Walk-in",
		Items: []OrderItemInput{
			{ItemName: "Latte", Quantity: 2, UnitPrice: 3.555},
			{ItemName: "Croissant", Quantity: 1, UnitPrice: 2.40},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	// 2 * 3.555 rounds to 7.11 per item before summing.
	assert.Equal(t, 7.11, order.Items[0].TotalPrice)
	assert.Equal(t, 2.40, order.Items[1].TotalPrice)
	assert.Equal(t, 9.51, createdOrder.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, createdOrder.Status)
	assert.Equal(t, models.OrderTypeDineIn, createdOrder.OrderType)
	assert.NotEmpty(t, createdOrder.OrderNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderRetriesOnDuplicateOrderNumber(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	var numbers []string
	repo := &fakeOrderRepo{
		createOrder: func(order *models.Order) (int64, error) {
			attempts++
			numbers = append(numbers, order.OrderNumber)
			if attempts == 1 {
				return 0, repositories.ErrDuplicateKey
			}
			order.ID = 11
			return 11, nil
		},
		getOrderByID: func(id int64) (*models.Order, error) {
			return &models.Order{ID: id}, nil
		},
		getOrderItemsByOID: func(orderID int64) ([]models.OrderItem, error) {
			return nil, nil
		},
	}
	svc := NewOrderService(repo, db)

	_, err := svc.CreateOrder(nil, CreateOrderRequest{CustomerName: "Walk-in"})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NotEqual(t, numbers[0], numbers[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddOrderItemRecomputesOrderTotal(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var recordedTotal float64
	repo := &fakeOrderRepo{
		getOrderByID: func(id int64) (*models.Order, error) {
			return &models.Order{ID: id, TotalAmount: 5.00}, nil
		},
		createOrderItem: func(item *models.OrderItem) (int64, error) {
			item.ID = 3
			return 3, nil
		},
		sumOrderItemTotals: func(orderID int64) (float64, error) {
			return 12.55, nil
		},
		updateOrderTotal: func(orderID int64, total float64) error {
			recordedTotal = total
			return nil
		},
	}
	svc := NewOrderService(repo, db)

	item, err := svc.AddOrderItem(CreateOrderItemRequest{
		OrderID: 1, ItemName: "Espresso", Quantity: 3, UnitPrice: 2.516,
	})
	require.NoError(t, err)

	assert.Equal(t, 7.55, item.TotalPrice) // 3 * 2.516 = 7.548, rounded
	assert.Equal(t, 12.55, recordedTotal)  // aggregate result, not the old total plus delta
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddOrderItemUnknownOrder(t *testing.T) {
	repo := &fakeOrderRepo{
		getOrderByID: func(id int64) (*models.Order, error) {
			return nil, repositories.ErrNotFound
		},
	}
	svc := NewOrderService(repo, nil)

	_, err := svc.AddOrderItem(CreateOrderItemRequest{
		OrderID: 99, ItemName: "Espresso", Quantity: 1, UnitPrice: 2.50,
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderItemMergesBeforeDerivingTotal(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeOrderRepo{
		getOrderItemByID: func(id int64) (*models.OrderItem, error) {
			return &models.OrderItem{
				ID: id, OrderID: 1, ItemName: "Latte",
				Quantity: 2, UnitPrice: 3.50, TotalPrice: 7.00,
			}, nil
		},
		updateOrderItem: func(item *models.OrderItem) error { return nil },
		sumOrderItemTotals: func(orderID int64) (float64, error) {
			return 10.50, nil
		},
		updateOrderTotal: func(orderID int64, total float64) error { return nil },
	}
	svc := NewOrderService(repo, db)

	// Only the quantity changes; the stored unit price feeds the new total.
	item, err := svc.UpdateOrderItem(1, UpdateOrderItemRequest{Quantity: intPtr(3)})
	require.NoError(t, err)

	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 3.50, item.UnitPrice)
	assert.Equal(t, 10.50, item.TotalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrderItemRefreshesParentTotal(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var recordedTotal float64
	repo := &fakeOrderRepo{
		getOrderItemByID: func(id int64) (*models.OrderItem, error) {
			return &models.OrderItem{ID: id, OrderID: 4}, nil
		},
		deleteOrderItem: func(id int64) error { return nil },
		sumOrderItemTotals: func(orderID int64) (float64, error) {
			return 0, nil // last item removed
		},
		updateOrderTotal: func(orderID int64, total float64) error {
			recordedTotal = total
			return nil
		},
	}
	svc := NewOrderService(repo, db)

	require.NoError(t, svc.DeleteOrderItem(9))
	assert.Equal(t, 0.0, recordedTotal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderRejectsUnknownEnums(t *testing.T) {
	repo := &fakeOrderRepo{
		getOrderByID: func(id int64) (*models.Order, error) {
			return &models.Order{ID: id, CustomerName: "Walk-in", OrderType: models.OrderTypeDineIn, Status: models.OrderStatusPending}, nil
		},
	}
	svc := NewOrderService(repo, nil)

	badStatus := "shipped"
	_, err := svc.UpdateOrder(1, UpdateOrderRequest{Status: &badStatus})
	assert.ErrorIs(t, err, ErrOrderValidation)

	badType := "delivery"
	_, err = svc.UpdateOrder(1, UpdateOrderRequest{OrderType: &badType})
	assert.ErrorIs(t, err, ErrOrderValidation)
}
