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
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrMenuItemExists   = errors.New("menu item with this name already exists")
	ErrMenuValidation   = errors.New("menu data validation error")
)

// --- Menu DTOs ---

// CreateMenuItemRequest is used for adding a new menu item. Fields arrive as
// multipart form values so the image can ride along in the same request.
type CreateMenuItemRequest struct {
	Name            string   `form:"name" binding:"required"`
	Description     *string  `form:"description"`
	Category        string   `form:"category" binding:"required"`
	Price           *float64 `form:"price" binding:"required"`
	IsAvailable     *bool    `form:"isAvailable"`
	PreparationTime *int     `form:"preparationTime"`
}

// UpdateMenuItemRequest merges supplied fields over an existing menu item.
type UpdateMenuItemRequest struct {
	Name            *string  `form:"name"`
	Description     *string  `form:"description"`
	Category        *string  `form:"category"`
	Price           *float64 `form:"price"`
	IsAvailable     *bool    `form:"isAvailable"`
	PreparationTime *int     `form:"preparationTime"`
}

// --- MenuService Interface ---
type MenuService interface {
	CreateMenuItem(req CreateMenuItemRequest, imagePath string) (*models.MenuItem, error)
	GetMenuItems(filters models.MenuItemFilters) ([]models.MenuItem, error)
	GetMenuItemByID(itemID int64) (*models.MenuItem, error)
	UpdateMenuItem(itemID int64, req UpdateMenuItemRequest, imagePath string) (*models.MenuItem, error)
	DeleteMenuItem(itemID int64) error
}

// --- menuService Implementation ---
type menuService struct {
	menuRepo repositories.MenuRepository
	db       *sql.DB
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(menuRepo repositories.MenuRepository, db *sql.DB) MenuService {
	return &menuService{
		menuRepo: menuRepo,
		db:       db,
	}
}

// CreateMenuItem adds a menu item. Names are unique; imagePath, when non-empty,
// is the public path of an already saved upload.
func (s *menuService) CreateMenuItem(req CreateMenuItemRequest, imagePath string) (*models.MenuItem, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: name is required", ErrMenuValidation)
	}
	if !models.IsValidMenuCategory(req.Category) {
		return nil, fmt.Errorf("%w: unknown category '%s'", ErrMenuValidation, req.Category)
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must be zero or positive", ErrMenuValidation)
	}

	existing, err := s.menuRepo.GetMenuItemByName(req.Name)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check menu item name: %w", err)
	}
	if existing != nil {
		return nil, ErrMenuItemExists
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	item := models.MenuItem{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           *req.Price,
		Image:           utils.NewNullString(imagePath),
		IsAvailable:     isAvailable,
		PreparationTime: req.PreparationTime,
	}

	if _, err := s.menuRepo.CreateMenuItem(s.db, &item); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrMenuItemExists
		}
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return s.GetMenuItemByID(item.ID)
}

// GetMenuItems lists menu items ordered by category then name.
func (s *menuService) GetMenuItems(filters models.MenuItemFilters) ([]models.MenuItem, error) {
	if filters.Category != nil && !models.IsValidMenuCategory(*filters.Category) {
		return nil, fmt.Errorf("%w: unknown category '%s'", ErrMenuValidation, *filters.Category)
	}
	items, err := s.menuRepo.GetMenuItems(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}
	return items, nil
}

// GetMenuItemByID retrieves one menu item.
func (s *menuService) GetMenuItemByID(itemID int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item by ID from repository: %w", err)
	}
	return item, nil
}

// UpdateMenuItem merges supplied fields over an existing item. A new imagePath
// replaces the stored image reference.
func (s *menuService) UpdateMenuItem(itemID int64, req UpdateMenuItemRequest, imagePath string) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetMenuItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to find menu item for update: %w", err)
	}

	if req.Name != nil {
		if utils.IsEmpty(*req.Name) {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrMenuValidation)
		}
		if *req.Name != item.Name {
			existing, nameErr := s.menuRepo.GetMenuItemByName(*req.Name)
			if nameErr != nil && !errors.Is(nameErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("failed to check menu item name: %w", nameErr)
			}
			if existing != nil {
				return nil, ErrMenuItemExists
			}
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Category != nil {
		if !models.IsValidMenuCategory(*req.Category) {
			return nil, fmt.Errorf("%w: unknown category '%s'", ErrMenuValidation, *req.Category)
		}
		item.Category = *req.Category
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must be zero or positive", ErrMenuValidation)
		}
		item.Price = *req.Price
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.PreparationTime != nil {
		item.PreparationTime = req.PreparationTime
	}
	if imagePath != "" {
		item.Image = &imagePath
	}

	if err := s.menuRepo.UpdateMenuItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrMenuItemExists
		}
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return s.GetMenuItemByID(itemID)
}

// DeleteMenuItem removes a menu item.
func (s *menuService) DeleteMenuItem(itemID int64) error {
	if err := s.menuRepo.DeleteMenuItem(s.db, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}
