package models

import "time"

// Menu item categories.
const (
	MenuCategoryAppetizer  = "appetizer"
	MenuCategoryMainCourse = "main_course"
	MenuCategoryDessert    = "dessert"
	MenuCategoryBeverage   = "beverage"
	MenuCategorySnack      = "snack"
	MenuCategorySpecial    = "special"
)

// IsValidMenuCategory checks if the provided category is a known menu category.
func IsValidMenuCategory(category string) bool {
	switch category {
	case MenuCategoryAppetizer, MenuCategoryMainCourse, MenuCategoryDessert,
		MenuCategoryBeverage, MenuCategorySnack, MenuCategorySpecial:
		return true
	default:
		return false
	}
}

// MenuItem represents a sellable item on the cafe menu.
type MenuItem struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name" db:"name"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Category        string    `json:"category" db:"category"`
	Price           float64   `json:"price" db:"price"`
	Image           *string   `json:"image,omitempty" db:"image"`
	IsAvailable     bool      `json:"isAvailable" db:"is_available"`
	PreparationTime *int      `json:"preparationTime,omitempty" db:"preparation_time"` // minutes
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// MenuItemFilters defines the available filters for querying menu items.
type MenuItemFilters struct {
	Category  *string `form:"category"`
	Available *bool   `form:"available"`
}

// Stock statuses. Status is a pure function of quantity versus minimum stock
// and is recomputed on every write.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// ComputeStockStatus derives the stock status from quantity and minimum threshold.
func ComputeStockStatus(quantity, minimumStock float64) string {
	if quantity <= 0 {
		return StockStatusOutOfStock
	}
	if quantity <= minimumStock {
		return StockStatusLowStock
	}
	return StockStatusInStock
}

// StockItem represents an inventory ingredient record.
type StockItem struct {
	ID             int64      `json:"id"`
	IngredientName string     `json:"ingredientName" db:"ingredient_name"`
	Category       string     `json:"category" db:"category"` // dairy, meat, vegetable, fruit, grain, spice, beverage, other
	Quantity       float64    `json:"quantity" db:"quantity"`
	Unit           string     `json:"unit" db:"unit"` // kg, g, l, ml, pieces, packets
	MinimumStock   float64    `json:"minimumStock" db:"minimum_stock"`
	UnitPrice      float64    `json:"unitPrice" db:"unit_price"`
	Supplier       *string    `json:"supplier,omitempty" db:"supplier"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty" db:"expiry_date"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// StockFilters defines the available filters for querying stock items.
type StockFilters struct {
	Status   *string `form:"status"`
	Category *string `form:"category"`
}
