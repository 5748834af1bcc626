package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cafe_backend/internal/models"

	"github.com/lib/pq"
)

// ReservationRepository defines the interface for reservation database operations.
type ReservationRepository interface {
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error)
	GetReservationByID(id int64) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, error)
	GetReservationsByTableID(tableID int64) ([]models.Reservation, error)
	UpdateReservation(executor SQLExecutor, reservation *models.Reservation) error
	DeleteReservation(executor SQLExecutor, id int64) error
	DeleteReservationsByTableID(executor SQLExecutor, tableID int64) (int64, error)
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, reservation_number, table_id, customer_name, customer_phone, customer_email, party_size, reservation_date, reservation_time, duration, status, special_requests, created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	var email, requests sql.NullString
	err := row.Scan(
		&reservation.ID, &reservation.ReservationNumber, &reservation.TableID,
		&reservation.CustomerName, &reservation.CustomerPhone, &email,
		&reservation.PartySize, &reservation.ReservationDate, &reservation.ReservationTime,
		&reservation.Duration, &reservation.Status, &requests,
		&reservation.CreatedAt, &reservation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email.Valid {
		reservation.CustomerEmail = &email.String
	}
	if requests.Valid {
		reservation.SpecialRequests = &requests.String
	}
	return reservation, nil
}

// CreateReservation inserts a new reservation.
func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error) {
	query := `INSERT INTO reservations (reservation_number, table_id, customer_name, customer_phone, customer_email, party_size, reservation_date, reservation_time, duration, status, special_requests, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id`

	currentTime := time.Now()
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = currentTime
	}
	if reservation.UpdatedAt.IsZero() {
		reservation.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		reservation.ReservationNumber, reservation.TableID, reservation.CustomerName,
		reservation.CustomerPhone, reservation.CustomerEmail, reservation.PartySize,
		reservation.ReservationDate, reservation.ReservationTime, reservation.Duration,
		reservation.Status, reservation.SpecialRequests, reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation.ID, nil
}

// GetReservationByID retrieves a reservation by its ID.
func (r *reservationRepository) GetReservationByID(id int64) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	reservation, err := scanReservation(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting reservation by ID %d: %v", ErrDatabaseError, id, err)
	}
	return reservation, nil
}

// GetReservations retrieves reservations with optional filters, ordered by date then time.
func (r *reservationRepository) GetReservations(filters models.ReservationFilters) ([]models.Reservation, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + reservationColumns + ` FROM reservations`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Date != nil && *filters.Date != "" {
		conditions = append(conditions, fmt.Sprintf("reservation_date = $%d", argCount))
		args = append(args, *filters.Date)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY reservation_date ASC, reservation_time ASC")

	return r.queryReservations(queryBuilder.String(), args...)
}

// GetReservationsByTableID retrieves all reservations referencing a table.
func (r *reservationRepository) GetReservationsByTableID(tableID int64) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE table_id = $1 ORDER BY reservation_date ASC, reservation_time ASC`
	return r.queryReservations(query, tableID)
}

func (r *reservationRepository) queryReservations(query string, args ...interface{}) ([]models.Reservation, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
		}
		reservations = append(reservations, *reservation)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, nil
}

// UpdateReservation updates an existing reservation.
func (r *reservationRepository) UpdateReservation(executor SQLExecutor, reservation *models.Reservation) error {
	query := `UPDATE reservations SET
	            table_id = $1, customer_name = $2, customer_phone = $3, customer_email = $4,
	            party_size = $5, reservation_date = $6, reservation_time = $7,
	            duration = $8, status = $9, special_requests = $10, updated_at = $11
	          WHERE id = $12`

	reservation.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		reservation.TableID, reservation.CustomerName, reservation.CustomerPhone,
		reservation.CustomerEmail, reservation.PartySize, reservation.ReservationDate,
		reservation.ReservationTime, reservation.Duration, reservation.Status,
		reservation.SpecialRequests, reservation.UpdatedAt, reservation.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReservation removes a reservation from the database.
func (r *reservationRepository) DeleteReservation(executor SQLExecutor, id int64) error {
	query := `DELETE FROM reservations WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReservationsByTableID removes all reservations referencing a table.
func (r *reservationRepository) DeleteReservationsByTableID(executor SQLExecutor, tableID int64) (int64, error) {
	query := `DELETE FROM reservations WHERE table_id = $1`
	result, err := executor.Exec(query, tableID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting reservations for table %d: %v", ErrDatabaseError, tableID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting reservations for table %d: %v", ErrDatabaseError, tableID, err)
	}
	return rowsAffected, nil
}
