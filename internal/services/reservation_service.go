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
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrReservationValidation = errors.New("reservation data validation error")
)

const (
	defaultReservationDuration = 60 // minutes
	defaultPartySize           = 2
)

// --- Reservation DTOs ---

// CreateReservationRequest is used for booking a table.
type CreateReservationRequest struct {
	TableID         int64   `json:"tableId" binding:"required"`
	CustomerName    string  `json:"customerName" binding:"required"`
	CustomerPhone   string  `json:"customerPhone" binding:"required"`
	CustomerEmail   *string `json:"customerEmail"`
	PartySize       *int    `json:"partySize"`
	ReservationDate string  `json:"reservationDate" binding:"required"` // YYYY-MM-DD
	ReservationTime string  `json:"reservationTime" binding:"required"` // HH:MM
	Duration        *int    `json:"duration"`                           // minutes
	Status          *string `json:"status"`
	SpecialRequests *string `json:"specialRequests"`
}

// UpdateReservationRequest merges supplied fields over an existing reservation.
type UpdateReservationRequest struct {
	TableID         *int64  `json:"tableId"`
	CustomerName    *string `json:"customerName"`
	CustomerPhone   *string `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail"`
	PartySize       *int    `json:"partySize"`
	ReservationDate *string `json:"reservationDate"`
	ReservationTime *string `json:"reservationTime"`
	Duration        *int    `json:"duration"`
	Status          *string `json:"status"`
	SpecialRequests *string `json:"specialRequests"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	CreateReservation(req CreateReservationRequest) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, error)
	GetReservationByID(reservationID int64) (*models.Reservation, error)
	UpdateReservation(reservationID int64, req UpdateReservationRequest) (*models.Reservation, error)
	DeleteReservation(reservationID int64) error
}

// --- reservationService Implementation ---
type reservationService struct {
	reservationRepo repositories.ReservationRepository
	tableRepo       repositories.TableRepository
	db              *sql.DB // For managing transactions
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(reservationRepo repositories.ReservationRepository, tableRepo repositories.TableRepository, db *sql.DB) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		db:              db,
	}
}

// CreateReservation books a table. The party size is checked against the
// table's seating capacity at creation time, and the table moves to reserved
// in the same transaction as the insert.
func (s *reservationService) CreateReservation(req CreateReservationRequest) (*models.Reservation, error) {
	if utils.IsEmpty(req.CustomerName) {
		return nil, fmt.Errorf("%w: customer name is required", ErrReservationValidation)
	}
	if utils.IsEmpty(req.CustomerPhone) {
		return nil, fmt.Errorf("%w: customer phone is required", ErrReservationValidation)
	}
	if req.CustomerEmail != nil && *req.CustomerEmail != "" && !utils.IsValidEmail(*req.CustomerEmail) {
		return nil, fmt.Errorf("%w: invalid customer email format", ErrReservationValidation)
	}

	table, err := s.tableRepo.GetTableByID(req.TableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to fetch table for reservation: %w", err)
	}

	partySize := defaultPartySize
	if req.PartySize != nil {
		if *req.PartySize <= 0 {
			return nil, fmt.Errorf("%w: party size must be positive", ErrReservationValidation)
		}
		partySize = *req.PartySize
	}
	if partySize > table.SeatingCapacity {
		return nil, fmt.Errorf("%w: party size exceeds table capacity of %d", ErrReservationValidation, table.SeatingCapacity)
	}

	duration := defaultReservationDuration
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, fmt.Errorf("%w: duration must be positive", ErrReservationValidation)
		}
		duration = *req.Duration
	}

	status := models.ReservationStatusPending
	if req.Status != nil && *req.Status != "" {
		if !models.IsValidReservationStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown reservation status '%s'", ErrReservationValidation, *req.Status)
		}
		status = *req.Status
	}

	reservation := models.Reservation{
		TableID:         req.TableID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		PartySize:       partySize,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		Duration:        duration,
		Status:          status,
		SpecialRequests: req.SpecialRequests,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var createErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		reservation.ReservationNumber = utils.GenerateBusinessNumber("RES")
		_, createErr = s.reservationRepo.CreateReservation(tx, &reservation)
		if createErr == nil || !errors.Is(createErr, repositories.ErrDuplicateKey) {
			break
		}
	}
	if createErr != nil {
		return nil, fmt.Errorf("failed to create reservation record: %w", createErr)
	}

	if err := s.tableRepo.UpdateTableStatus(tx, req.TableID, models.TableStatusReserved); err != nil {
		return nil, fmt.Errorf("failed to mark table as reserved: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation transaction: %w", err)
	}

	return s.GetReservationByID(reservation.ID)
}

// GetReservations lists reservations ordered by date then time, with the
// referenced table attached.
func (s *reservationService) GetReservations(filters models.ReservationFilters) ([]models.Reservation, error) {
	reservations, err := s.reservationRepo.GetReservations(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations: %w", err)
	}
	for i := range reservations {
		if err := s.attachTable(&reservations[i]); err != nil {
			return nil, err
		}
	}
	return reservations, nil
}

// GetReservationByID retrieves one reservation with its table.
func (s *reservationService) GetReservationByID(reservationID int64) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by ID from repository: %w", err)
	}
	if err := s.attachTable(reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// UpdateReservation merges supplied fields over an existing reservation. When
// the status moves to cancelled or completed, the table the reservation was
// holding before the update is released back to available, in the same
// transaction. The capacity check applies only at creation.
func (s *reservationService) UpdateReservation(reservationID int64, req UpdateReservationRequest) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation for update: %w", err)
	}
	heldTableID := reservation.TableID

	if req.TableID != nil {
		if _, tblErr := s.tableRepo.GetTableByID(*req.TableID); tblErr != nil {
			if errors.Is(tblErr, repositories.ErrNotFound) {
				return nil, ErrTableNotFound
			}
			return nil, fmt.Errorf("failed to fetch table for reservation update: %w", tblErr)
		}
		reservation.TableID = *req.TableID
	}
	if req.CustomerName != nil {
		if utils.IsEmpty(*req.CustomerName) {
			return nil, fmt.Errorf("%w: customer name cannot be empty", ErrReservationValidation)
		}
		reservation.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		if utils.IsEmpty(*req.CustomerPhone) {
			return nil, fmt.Errorf("%w: customer phone cannot be empty", ErrReservationValidation)
		}
		reservation.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		if *req.CustomerEmail != "" && !utils.IsValidEmail(*req.CustomerEmail) {
			return nil, fmt.Errorf("%w: invalid customer email format", ErrReservationValidation)
		}
		reservation.CustomerEmail = req.CustomerEmail
	}
	if req.PartySize != nil {
		if *req.PartySize <= 0 {
			return nil, fmt.Errorf("%w: party size must be positive", ErrReservationValidation)
		}
		reservation.PartySize = *req.PartySize
	}
	if req.ReservationDate != nil {
		reservation.ReservationDate = *req.ReservationDate
	}
	if req.ReservationTime != nil {
		reservation.ReservationTime = *req.ReservationTime
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, fmt.Errorf("%w: duration must be positive", ErrReservationValidation)
		}
		reservation.Duration = *req.Duration
	}
	if req.Status != nil {
		if !models.IsValidReservationStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown reservation status '%s'", ErrReservationValidation, *req.Status)
		}
		reservation.Status = *req.Status
	}
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = req.SpecialRequests
	}

	releaseTable := req.Status != nil &&
		(*req.Status == models.ReservationStatusCancelled || *req.Status == models.ReservationStatusCompleted)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.reservationRepo.UpdateReservation(tx, reservation); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	if releaseTable {
		if err := s.tableRepo.UpdateTableStatus(tx, heldTableID, models.TableStatusAvailable); err != nil {
			return nil, fmt.Errorf("failed to release table: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation transaction: %w", err)
	}

	return s.GetReservationByID(reservationID)
}

// DeleteReservation removes a reservation and releases its table in one
// transaction.
func (s *reservationService) DeleteReservation(reservationID int64) error {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to fetch reservation for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.reservationRepo.DeleteReservation(tx, reservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if err := s.tableRepo.UpdateTableStatus(tx, reservation.TableID, models.TableStatusAvailable); err != nil {
		return fmt.Errorf("failed to release table: %w", err)
	}

	return tx.Commit()
}

func (s *reservationService) attachTable(reservation *models.Reservation) error {
	table, err := s.tableRepo.GetTableByID(reservation.TableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get table for reservation %d: %w", reservation.ID, err)
	}
	table.Reservations = nil
	reservation.Table = table
	return nil
}
