package services

import (
	"database/sql"
	"errors"
	"fmt"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
)

// --- Custom Service Errors ---
var (
	ErrTableNotFound   = errors.New("table not found")
	ErrTableExists     = errors.New("table with this number already exists")
	ErrTableValidation = errors.New("table data validation error")
)

// --- Table DTOs ---

// CreateTableRequest is used for registering a new cafe table.
type CreateTableRequest struct {
	TableNumber     *int    `json:"tableNumber" binding:"required"`
	SeatingCapacity *int    `json:"seatingCapacity" binding:"required"`
	Location        *string `json:"location"`
	Status          *string `json:"status"`
	Description     *string `json:"description"`
}

// UpdateTableRequest merges supplied fields over an existing table.
type UpdateTableRequest struct {
	TableNumber     *int    `json:"tableNumber"`
	SeatingCapacity *int    `json:"seatingCapacity"`
	Location        *string `json:"location"`
	Status          *string `json:"status"`
	Description     *string `json:"description"`
}

// --- TableService Interface ---
type TableService interface {
	CreateTable(req CreateTableRequest) (*models.Table, error)
	GetTables(filters models.TableFilters) ([]models.Table, error)
	GetTableByID(tableID int64) (*models.Table, error)
	UpdateTable(tableID int64, req UpdateTableRequest) (*models.Table, error)
	DeleteTable(tableID int64) error
}

// --- tableService Implementation ---
type tableService struct {
	tableRepo       repositories.TableRepository
	reservationRepo repositories.ReservationRepository
	db              *sql.DB // For managing transactions
}

// NewTableService creates a new instance of TableService.
func NewTableService(tableRepo repositories.TableRepository, reservationRepo repositories.ReservationRepository, db *sql.DB) TableService {
	return &tableService{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		db:              db,
	}
}

// CreateTable registers a table. Table numbers are unique.
func (s *tableService) CreateTable(req CreateTableRequest) (*models.Table, error) {
	if req.TableNumber == nil || *req.TableNumber <= 0 {
		return nil, fmt.Errorf("%w: table number must be positive", ErrTableValidation)
	}
	if req.SeatingCapacity == nil || *req.SeatingCapacity <= 0 {
		return nil, fmt.Errorf("%w: seating capacity must be positive", ErrTableValidation)
	}

	existing, err := s.tableRepo.GetTableByNumber(*req.TableNumber)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check table number: %w", err)
	}
	if existing != nil {
		return nil, ErrTableExists
	}

	location := models.TableLocationIndoor
	if req.Location != nil && *req.Location != "" {
		if !models.IsValidTableLocation(*req.Location) {
			return nil, fmt.Errorf("%w: unknown location '%s'", ErrTableValidation, *req.Location)
		}
		location = *req.Location
	}

	status := models.TableStatusAvailable
	if req.Status != nil && *req.Status != "" {
		if !models.IsValidTableStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown table status '%s'", ErrTableValidation, *req.Status)
		}
		status = *req.Status
	}

	table := models.Table{
		TableNumber:     *req.TableNumber,
		SeatingCapacity: *req.SeatingCapacity,
		Location:        location,
		Status:          status,
		Description:     req.Description,
	}

	if _, err := s.tableRepo.CreateTable(s.db, &table); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrTableExists
		}
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return s.GetTableByID(table.ID)
}

// GetTables lists tables ordered by table number, with reservations attached.
func (s *tableService) GetTables(filters models.TableFilters) ([]models.Table, error) {
	tables, err := s.tableRepo.GetTables(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	for i := range tables {
		reservations, resErr := s.reservationRepo.GetReservationsByTableID(tables[i].ID)
		if resErr != nil {
			return nil, fmt.Errorf("failed to get reservations for table %d: %w", tables[i].ID, resErr)
		}
		tables[i].Reservations = reservations
	}
	return tables, nil
}

// GetTableByID retrieves one table with its reservations.
func (s *tableService) GetTableByID(tableID int64) (*models.Table, error) {
	table, err := s.tableRepo.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to get table by ID from repository: %w", err)
	}

	reservations, err := s.reservationRepo.GetReservationsByTableID(tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations for table %d: %w", tableID, err)
	}
	table.Reservations = reservations
	return table, nil
}

// UpdateTable merges supplied fields over an existing table.
func (s *tableService) UpdateTable(tableID int64, req UpdateTableRequest) (*models.Table, error) {
	table, err := s.tableRepo.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to find table for update: %w", err)
	}

	if req.TableNumber != nil {
		if *req.TableNumber <= 0 {
			return nil, fmt.Errorf("%w: table number must be positive", ErrTableValidation)
		}
		if *req.TableNumber != table.TableNumber {
			existing, numErr := s.tableRepo.GetTableByNumber(*req.TableNumber)
			if numErr != nil && !errors.Is(numErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("failed to check table number: %w", numErr)
			}
			if existing != nil {
				return nil, ErrTableExists
			}
		}
		table.TableNumber = *req.TableNumber
	}
	if req.SeatingCapacity != nil {
		if *req.SeatingCapacity <= 0 {
			return nil, fmt.Errorf("%w: seating capacity must be positive", ErrTableValidation)
		}
		table.SeatingCapacity = *req.SeatingCapacity
	}
	if req.Location != nil {
		if !models.IsValidTableLocation(*req.Location) {
			return nil, fmt.Errorf("%w: unknown location '%s'", ErrTableValidation, *req.Location)
		}
		table.Location = *req.Location
	}
	if req.Status != nil {
		if !models.IsValidTableStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown table status '%s'", ErrTableValidation, *req.Status)
		}
		table.Status = *req.Status
	}
	if req.Description != nil {
		table.Description = req.Description
	}

	if err := s.tableRepo.UpdateTable(s.db, table); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrTableExists
		}
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return s.GetTableByID(tableID)
}

// DeleteTable removes a table and its reservations in one transaction.
func (s *tableService) DeleteTable(tableID int64) error {
	if _, err := s.tableRepo.GetTableByID(tableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to fetch table for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.reservationRepo.DeleteReservationsByTableID(tx, tableID); err != nil {
		return fmt.Errorf("failed to delete reservations for table: %w", err)
	}
	if err := s.tableRepo.DeleteTable(tx, tableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to delete table: %w", err)
	}

	return tx.Commit()
}
