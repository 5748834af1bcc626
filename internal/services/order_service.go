package services

import (
	"database/sql"
	"errors"
	"fmt"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
	"cafe_backend/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
	ErrOrderValidation   = errors.New("order data validation error")
)

// maxNumberAttempts bounds the regenerate-and-retry loop used when an insert
// collides on a generated business number. The database unique constraint is
// the authority; the format alone is not assumed collision-free.
const maxNumberAttempts = 3

// --- Order DTOs ---

// OrderItemInput describes one line item supplied inline with an order create.
type OrderItemInput struct {
	ItemName            string  `json:"itemName" binding:"required"`
	Quantity            int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice           float64 `json:"unitPrice" binding:"required"`
	SpecialInstructions *string `json:"specialInstructions"`
}

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	CustomerName string           `json:"customerName" binding:"required"`
	OrderType    *string          `json:"orderType"`
	TableNumber  *int             `json:"tableNumber"`
	Notes        *string          `json:"notes"`
	Items        []OrderItemInput `json:"items" binding:"dive"`
}

// UpdateOrderRequest merges supplied fields over an existing order.
type UpdateOrderRequest struct {
	CustomerName *string `json:"customerName"`
	OrderType    *string `json:"orderType"`
	Status       *string `json:"status"`
	TableNumber  *int    `json:"tableNumber"`
	Notes        *string `json:"notes"`
}

// CreateOrderItemRequest adds an item to an existing order.
type CreateOrderItemRequest struct {
	OrderID             int64   `json:"orderId" binding:"required"`
	ItemName            string  `json:"itemName" binding:"required"`
	Quantity            int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice           float64 `json:"unitPrice" binding:"required"`
	SpecialInstructions *string `json:"specialInstructions"`
}

// UpdateOrderItemRequest merges supplied fields over an existing order item.
type UpdateOrderItemRequest struct {
	ItemName            *string  `json:"itemName"`
	Quantity            *int     `json:"quantity"`
	UnitPrice           *float64 `json:"unitPrice"`
	SpecialInstructions *string  `json:"specialInstructions"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(customerID *int64, req CreateOrderRequest) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	UpdateOrder(orderID int64, req UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(orderID int64) error

	AddOrderItem(req CreateOrderItemRequest) (*models.OrderItem, error)
	GetOrderItems(orderID int64) ([]models.OrderItem, error)
	UpdateOrderItem(itemID int64, req UpdateOrderItemRequest) (*models.OrderItem, error)
	DeleteOrderItem(itemID int64) error
}

// --- orderService Implementation ---
type orderService struct {
	orderRepo repositories.OrderRepository
	db        *sql.DB // For managing transactions
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, db *sql.DB) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		db:        db,
	}
}

// CreateOrder creates an order with its inline items in one transaction.
// The stored total equals the sum of the item totals, each rounded to two decimals.
func (s *orderService) CreateOrder(customerID *int64, req CreateOrderRequest) (*models.Order, error) {
	if utils.IsEmpty(req.CustomerName) {
		return nil, fmt.Errorf("%w: customer name is required", ErrOrderValidation)
	}

	orderType := models.OrderTypeDineIn
	if req.OrderType != nil && *req.OrderType != "" {
		if !models.IsValidOrderType(*req.OrderType) {
			return nil, fmt.Errorf("%w: unknown order type '%s'", ErrOrderValidation, *req.OrderType)
		}
		orderType = *req.OrderType
	}

	var totalAmount float64
	itemsToCreate := make([]models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for item '%s' must be positive", ErrOrderValidation, itemReq.ItemName)
		}
		itemTotal := utils.Round2(float64(itemReq.Quantity) * itemReq.UnitPrice)
		totalAmount += itemTotal
		itemsToCreate = append(itemsToCreate, models.OrderItem{
			ItemName:            itemReq.ItemName,
			Quantity:            itemReq.Quantity,
			UnitPrice:           itemReq.UnitPrice,
			TotalPrice:          itemTotal,
			SpecialInstructions: itemReq.SpecialInstructions,
		})
	}
	totalAmount = utils.Round2(totalAmount)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	order := models.Order{
		CustomerID:   customerID,
		CustomerName: req.CustomerName,
		OrderType:    orderType,
		Status:       models.OrderStatusPending,
		TableNumber:  req.TableNumber,
		TotalAmount:  totalAmount,
		Notes:        req.Notes,
	}

	var createErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order.OrderNumber = utils.GenerateBusinessNumber("ORD")
		_, createErr = s.orderRepo.CreateOrder(tx, &order)
		if createErr == nil || !errors.Is(createErr, repositories.ErrDuplicateKey) {
			break
		}
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create order record: %w", createErr)
	}

	for i := range itemsToCreate {
		itemsToCreate[i].OrderID = order.ID
		if _, err := s.orderRepo.CreateOrderItem(tx, &itemsToCreate[i]); err != nil {
			return nil, fmt.Errorf("failed to create order item '%s': %w", itemsToCreate[i].ItemName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return s.GetOrderByID(order.ID)
}

// GetOrders lists orders, newest first, with their items attached.
func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	for i := range orders {
		items, itemsErr := s.orderRepo.GetOrderItemsByOrderID(orders[i].ID)
		if itemsErr != nil {
			return nil, fmt.Errorf("failed to get items for order %d: %w", orders[i].ID, itemsErr)
		}
		orders[i].Items = items
	}
	return orders, nil
}

// GetOrderByID retrieves one order with its items.
func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID from repository: %w", err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for order %d: %w", orderID, err)
	}
	order.Items = items
	return order, nil
}

// UpdateOrder merges the supplied fields over an existing order. The total
// amount is not touched here; it only moves with item mutations.
func (s *orderService) UpdateOrder(orderID int64, req UpdateOrderRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order for update: %w", err)
	}

	if req.CustomerName != nil {
		if utils.IsEmpty(*req.CustomerName) {
			return nil, fmt.Errorf("%w: customer name cannot be empty", ErrOrderValidation)
		}
		order.CustomerName = *req.CustomerName
	}
	if req.OrderType != nil {
		if !models.IsValidOrderType(*req.OrderType) {
			return nil, fmt.Errorf("%w: unknown order type '%s'", ErrOrderValidation, *req.OrderType)
		}
		order.OrderType = *req.OrderType
	}
	if req.Status != nil {
		if !models.IsValidOrderStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown order status '%s'", ErrOrderValidation, *req.Status)
		}
		order.Status = *req.Status
	}
	if req.TableNumber != nil {
		order.TableNumber = req.TableNumber
	}
	if req.Notes != nil {
		order.Notes = req.Notes
	}

	if err := s.orderRepo.UpdateOrder(s.db, order); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order in repository: %w", err)
	}
	return s.GetOrderByID(orderID)
}

// DeleteOrder removes an order and its items in one transaction.
func (s *orderService) DeleteOrder(orderID int64) error {
	if _, err := s.orderRepo.GetOrderByID(orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to fetch order for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.orderRepo.DeleteOrderItemsByOrderID(tx, orderID); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if err := s.orderRepo.DeleteOrder(tx, orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return tx.Commit()
}

// AddOrderItem appends an item to an order and recomputes the parent total
// from an aggregate over all siblings, in the same transaction as the insert.
func (s *orderService) AddOrderItem(req CreateOrderItemRequest) (*models.OrderItem, error) {
	if _, err := s.orderRepo.GetOrderByID(req.OrderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for item creation: %w", err)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrOrderValidation)
	}

	item := models.OrderItem{
		OrderID:             req.OrderID,
		ItemName:            req.ItemName,
		Quantity:            req.Quantity,
		UnitPrice:           req.UnitPrice,
		TotalPrice:          utils.Round2(float64(req.Quantity) * req.UnitPrice),
		SpecialInstructions: req.SpecialInstructions,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.orderRepo.CreateOrderItem(tx, &item); err != nil {
		return nil, fmt.Errorf("failed to create order item: %w", err)
	}
	if err := s.recomputeOrderTotal(tx, req.OrderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order item transaction: %w", err)
	}
	return &item, nil
}

// GetOrderItems lists the items of one order.
func (s *orderService) GetOrderItems(orderID int64) ([]models.OrderItem, error) {
	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	return items, nil
}

// UpdateOrderItem merges supplied fields over an item, recomputes its total
// price from the merged values, and refreshes the parent order total.
func (s *orderService) UpdateOrderItem(itemID int64, req UpdateOrderItemRequest) (*models.OrderItem, error) {
	item, err := s.orderRepo.GetOrderItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to find order item for update: %w", err)
	}

	if req.ItemName != nil {
		if utils.IsEmpty(*req.ItemName) {
			return nil, fmt.Errorf("%w: item name cannot be empty", ErrOrderValidation)
		}
		item.ItemName = *req.ItemName
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrOrderValidation)
		}
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.SpecialInstructions != nil {
		item.SpecialInstructions = req.SpecialInstructions
	}
	// Derived from merged values, not raw input, so partial updates stay consistent.
	item.TotalPrice = utils.Round2(float64(item.Quantity) * item.UnitPrice)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.UpdateOrderItem(tx, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to update order item: %w", err)
	}
	if err := s.recomputeOrderTotal(tx, item.OrderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order item transaction: %w", err)
	}
	return item, nil
}

// DeleteOrderItem removes an item and refreshes the parent order total.
func (s *orderService) DeleteOrderItem(itemID int64) error {
	item, err := s.orderRepo.GetOrderItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderItemNotFound
		}
		return fmt.Errorf("failed to find order item for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.DeleteOrderItem(tx, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderItemNotFound
		}
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	if err := s.recomputeOrderTotal(tx, item.OrderID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *orderService) recomputeOrderTotal(executor repositories.SQLExecutor, orderID int64) error {
	total, err := s.orderRepo.SumOrderItemTotals(executor, orderID)
	if err != nil {
		return fmt.Errorf("failed to sum order item totals: %w", err)
	}
	if err := s.orderRepo.UpdateOrderTotal(executor, orderID, utils.Round2(total)); err != nil {
		return fmt.Errorf("failed to update order total: %w", err)
	}
	return nil
}
