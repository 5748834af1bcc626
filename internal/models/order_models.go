package models

import "time"

// Order types.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeOnline   = "online"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// IsValidOrderType checks if the provided order type is known.
func IsValidOrderType(orderType string) bool {
	switch orderType {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeOnline:
		return true
	default:
		return false
	}
}

// IsValidOrderStatus checks if the provided status is a known order status.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order represents a customer order. TotalAmount is derived: it must equal the
// sum of child OrderItem.TotalPrice after any item mutation.
type Order struct {
	ID           int64       `json:"id"`
	OrderNumber  string      `json:"orderNumber" db:"order_number"`
	CustomerID   *int64      `json:"customerId,omitempty" db:"customer_id"`
	CustomerName string      `json:"customerName" db:"customer_name"`
	OrderType    string      `json:"orderType" db:"order_type"`
	Status       string      `json:"status" db:"status"`
	TableNumber  *int        `json:"tableNumber,omitempty" db:"table_number"`
	TotalAmount  float64     `json:"totalAmount" db:"total_amount"`
	Notes        *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
	Items        []OrderItem `json:"items"`
}

// OrderItem represents a line item belonging to one order.
// TotalPrice = Quantity * UnitPrice, rounded to two decimals.
type OrderItem struct {
	ID                  int64     `json:"id"`
	OrderID             int64     `json:"orderId" db:"order_id"`
	ItemName            string    `json:"itemName" db:"item_name"`
	Quantity            int       `json:"quantity" db:"quantity"`
	UnitPrice           float64   `json:"unitPrice" db:"unit_price"`
	TotalPrice          float64   `json:"totalPrice" db:"total_price"`
	SpecialInstructions *string   `json:"specialInstructions,omitempty" db:"special_instructions"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	Status    *string `form:"status"`
	OrderType *string `form:"orderType"`
}
