package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
	"cafe_backend/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrStockItemNotFound = errors.New("stock item not found")
	ErrStockValidation   = errors.New("stock data validation error")
)

const expiryDateLayout = "2006-01-02"

// --- Stock DTOs ---

// CreateStockItemRequest is used for adding a new inventory record.
type CreateStockItemRequest struct {
	IngredientName string   `json:"ingredientName" binding:"required"`
	Category       string   `json:"category" binding:"required"`
	Quantity       *float64 `json:"quantity" binding:"required"`
	Unit           string   `json:"unit" binding:"required"`
	MinimumStock   *float64 `json:"minimumStock"`
	UnitPrice      *float64 `json:"unitPrice"`
	Supplier       *string  `json:"supplier"`
	ExpiryDate     *string  `json:"expiryDate"` // YYYY-MM-DD
}

// UpdateStockItemRequest merges supplied fields over an existing stock item.
type UpdateStockItemRequest struct {
	IngredientName *string  `json:"ingredientName"`
	Category       *string  `json:"category"`
	Quantity       *float64 `json:"quantity"`
	Unit           *string  `json:"unit"`
	MinimumStock   *float64 `json:"minimumStock"`
	UnitPrice      *float64 `json:"unitPrice"`
	Supplier       *string  `json:"supplier"`
	ExpiryDate     *string  `json:"expiryDate"` // YYYY-MM-DD
}

// --- StockService Interface ---
type StockService interface {
	CreateStockItem(req CreateStockItemRequest) (*models.StockItem, error)
	GetStockItems(filters models.StockFilters) ([]models.StockItem, error)
	GetStockItemByID(itemID int64) (*models.StockItem, error)
	GetLowStockAlerts() ([]models.StockItem, error)
	UpdateStockItem(itemID int64, req UpdateStockItemRequest) (*models.StockItem, error)
	DeleteStockItem(itemID int64) error
}

// --- stockService Implementation ---
type stockService struct {
	stockRepo repositories.StockRepository
	db        *sql.DB
}

// NewStockService creates a new instance of StockService.
func NewStockService(stockRepo repositories.StockRepository, db *sql.DB) StockService {
	return &stockService{
		stockRepo: stockRepo,
		db:        db,
	}
}

// CreateStockItem adds an inventory record. The status is derived from the
// quantity against the minimum threshold, never accepted from the client.
func (s *stockService) CreateStockItem(req CreateStockItemRequest) (*models.StockItem, error) {
	if utils.IsEmpty(req.IngredientName) {
		return nil, fmt.Errorf("%w: ingredient name is required", ErrStockValidation)
	}
	if utils.IsEmpty(req.Category) {
		return nil, fmt.Errorf("%w: category is required", ErrStockValidation)
	}
	if utils.IsEmpty(req.Unit) {
		return nil, fmt.Errorf("%w: unit is required", ErrStockValidation)
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be zero or positive", ErrStockValidation)
	}

	minimumStock := 0.0
	if req.MinimumStock != nil {
		if *req.MinimumStock < 0 {
			return nil, fmt.Errorf("%w: minimum stock must be zero or positive", ErrStockValidation)
		}
		minimumStock = *req.MinimumStock
	}
	unitPrice := 0.0
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price must be zero or positive", ErrStockValidation)
		}
		unitPrice = *req.UnitPrice
	}

	expiryDate, err := parseExpiryDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	item := models.StockItem{
		IngredientName: req.IngredientName,
		Category:       req.Category,
		Quantity:       *req.Quantity,
		Unit:           req.Unit,
		MinimumStock:   minimumStock,
		UnitPrice:      unitPrice,
		Supplier:       req.Supplier,
		ExpiryDate:     expiryDate,
		Status:         models.ComputeStockStatus(*req.Quantity, minimumStock),
	}

	if _, err := s.stockRepo.CreateStockItem(s.db, &item); err != nil {
		return nil, fmt.Errorf("failed to create stock item: %w", err)
	}
	return s.GetStockItemByID(item.ID)
}

// GetStockItems lists inventory records ordered by ingredient name.
func (s *stockService) GetStockItems(filters models.StockFilters) ([]models.StockItem, error) {
	items, err := s.stockRepo.GetStockItems(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock items: %w", err)
	}
	return items, nil
}

// GetStockItemByID retrieves one inventory record.
func (s *stockService) GetStockItemByID(itemID int64) (*models.StockItem, error) {
	item, err := s.stockRepo.GetStockItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("failed to get stock item by ID from repository: %w", err)
	}
	return item, nil
}

// GetLowStockAlerts lists items that are low or out of stock, lowest first.
func (s *stockService) GetLowStockAlerts() ([]models.StockItem, error) {
	items, err := s.stockRepo.GetLowStockItems()
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock items: %w", err)
	}
	return items, nil
}

// UpdateStockItem merges supplied fields over an existing record and recomputes
// the status from the merged quantity and minimum stock.
func (s *stockService) UpdateStockItem(itemID int64, req UpdateStockItemRequest) (*models.StockItem, error) {
	item, err := s.stockRepo.GetStockItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("failed to find stock item for update: %w", err)
	}

	if req.IngredientName != nil {
		if utils.IsEmpty(*req.IngredientName) {
			return nil, fmt.Errorf("%w: ingredient name cannot be empty", ErrStockValidation)
		}
		item.IngredientName = *req.IngredientName
	}
	if req.Category != nil {
		if utils.IsEmpty(*req.Category) {
			return nil, fmt.Errorf("%w: category cannot be empty", ErrStockValidation)
		}
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must be zero or positive", ErrStockValidation)
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		if utils.IsEmpty(*req.Unit) {
			return nil, fmt.Errorf("%w: unit cannot be empty", ErrStockValidation)
		}
		item.Unit = *req.Unit
	}
	if req.MinimumStock != nil {
		if *req.MinimumStock < 0 {
			return nil, fmt.Errorf("%w: minimum stock must be zero or positive", ErrStockValidation)
		}
		item.MinimumStock = *req.MinimumStock
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: unit price must be zero or positive", ErrStockValidation)
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.Supplier != nil {
		item.Supplier = req.Supplier
	}
	if req.ExpiryDate != nil {
		expiryDate, parseErr := parseExpiryDate(req.ExpiryDate)
		if parseErr != nil {
			return nil, parseErr
		}
		item.ExpiryDate = expiryDate
	}
	// Status follows the merged values, so a quantity-only or threshold-only
	// update still lands on the right state.
	item.Status = models.ComputeStockStatus(item.Quantity, item.MinimumStock)

	if err := s.stockRepo.UpdateStockItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStockItemNotFound
		}
		return nil, fmt.Errorf("failed to update stock item: %w", err)
	}
	return s.GetStockItemByID(itemID)
}

// DeleteStockItem removes an inventory record.
func (s *stockService) DeleteStockItem(itemID int64) error {
	if err := s.stockRepo.DeleteStockItem(s.db, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStockItemNotFound
		}
		return fmt.Errorf("failed to delete stock item: %w", err)
	}
	return nil
}

func parseExpiryDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(expiryDateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry date must be in YYYY-MM-DD format", ErrStockValidation)
	}
	return &parsed, nil
}
