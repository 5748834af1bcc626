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

// TableRepository defines the interface for cafe table database operations.
type TableRepository interface {
	CreateTable(executor SQLExecutor, table *models.Table) (int64, error)
	GetTableByID(id int64) (*models.Table, error)
	GetTableByNumber(tableNumber int) (*models.Table, error)
	GetTables(filters models.TableFilters) ([]models.Table, error)
	UpdateTable(executor SQLExecutor, table *models.Table) error
	UpdateTableStatus(executor SQLExecutor, id int64, status string) error
	DeleteTable(executor SQLExecutor, id int64) error
}

type tableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new instance of TableRepository.
func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{db: db}
}

const tableColumns = `id, table_number, seating_capacity, location, status, description, created_at, updated_at`

func scanTable(row interface{ Scan(...interface{}) error }) (*models.Table, error) {
	table := &models.Table{}
	var description sql.NullString
	err := row.Scan(
		&table.ID, &table.TableNumber, &table.SeatingCapacity, &table.Location,
		&table.Status, &description, &table.CreatedAt, &table.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		table.Description = &description.String
	}
	return table, nil
}

// CreateTable inserts a new cafe table.
func (r *tableRepository) CreateTable(executor SQLExecutor, table *models.Table) (int64, error) {
	query := `INSERT INTO cafe_tables (table_number, seating_capacity, location, status, description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	if table.CreatedAt.IsZero() {
		table.CreatedAt = currentTime
	}
	if table.UpdatedAt.IsZero() {
		table.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		table.TableNumber, table.SeatingCapacity, table.Location,
		table.Status, table.Description, table.CreatedAt, table.UpdatedAt,
	).Scan(&table.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating table: %v", ErrDatabaseError, err)
	}
	return table.ID, nil
}

// GetTableByID retrieves a table by its ID. Reservations are fetched separately.
func (r *tableRepository) GetTableByID(id int64) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM cafe_tables WHERE id = $1`
	table, err := scanTable(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting table by ID %d: %v", ErrDatabaseError, id, err)
	}
	return table, nil
}

// GetTableByNumber retrieves a table by its unique table number.
func (r *tableRepository) GetTableByNumber(tableNumber int) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM cafe_tables WHERE table_number = $1`
	table, err := scanTable(r.db.QueryRow(query, tableNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting table by number %d: %v", ErrDatabaseError, tableNumber, err)
	}
	return table, nil
}

// GetTables retrieves tables with optional filters, ordered by table number.
func (r *tableRepository) GetTables(filters models.TableFilters) ([]models.Table, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + tableColumns + ` FROM cafe_tables`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.Location != nil && *filters.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location = $%d", argCount))
		args = append(args, *filters.Location)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY table_number ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning table: %v", ErrDatabaseError, err)
		}
		tables = append(tables, *table)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating table rows: %v", ErrDatabaseError, err)
	}
	return tables, nil
}

// UpdateTable updates an existing cafe table.
func (r *tableRepository) UpdateTable(executor SQLExecutor, table *models.Table) error {
	query := `UPDATE cafe_tables SET
	            table_number = $1, seating_capacity = $2, location = $3,
	            status = $4, description = $5, updated_at = $6
	          WHERE id = $7`

	table.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		table.TableNumber, table.SeatingCapacity, table.Location,
		table.Status, table.Description, table.UpdatedAt, table.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating table ID %d: %v", ErrDatabaseError, table.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating table ID %d: %v", ErrDatabaseError, table.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTableStatus writes only the status of a table.
func (r *tableRepository) UpdateTableStatus(executor SQLExecutor, id int64, status string) error {
	query := `UPDATE cafe_tables SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating status for table %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating status for table %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTable removes a table. Reservations must be deleted first by the caller.
func (r *tableRepository) DeleteTable(executor SQLExecutor, id int64) error {
	query := `DELETE FROM cafe_tables WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting table ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting table ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
