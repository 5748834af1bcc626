package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"
)

// newTableFixture shares one in-memory table record between the table repo
// fake and a reservation repo fake that returns no reservations.
func newTableFixture() (*fakeTableRepo, *fakeReservationRepo, *models.Table) {
	stored := &models.Table{}
	tableRepo := &fakeTableRepo{
		createTable: func(table *models.Table) (int64, error) {
			table.ID = 1
			*stored = *table
			return 1, nil
		},
		getTableByID: func(id int64) (*models.Table, error) {
			if stored.ID != id {
				return nil, repositories.ErrNotFound
			}
			copied := *stored
			return &copied, nil
		},
		getTableByNumber: func(number int) (*models.Table, error) {
			if stored.ID != 0 && stored.TableNumber == number {
				copied := *stored
				return &copied, nil
			}
			return nil, repositories.ErrNotFound
		},
		updateTable: func(table *models.Table) error {
			*stored = *table
			return nil
		},
	}
	reservationRepo := &fakeReservationRepo{
		getReservationsByTableID: func(int64) ([]models.Reservation, error) {
			return []models.Reservation{}, nil
		},
	}
	return tableRepo, reservationRepo, stored
}

func TestCreateTableDefaults(t *testing.T) {
	tableRepo, reservationRepo, _ := newTableFixture()
	svc := NewTableService(tableRepo, reservationRepo, nil)

	table, err := svc.CreateTable(CreateTableRequest{
		TableNumber:     intPtr(12),
		SeatingCapacity: intPtr(4),
	})
	require.NoError(t, err)

	assert.Equal(t, 12, table.TableNumber)
	assert.Equal(t, 4, table.SeatingCapacity)
	assert.Equal(t, models.TableLocationIndoor, table.Location)
	assert.Equal(t, models.TableStatusAvailable, table.Status)
	assert.NotNil(t, table.Reservations)
}

func TestCreateTableDuplicateNumber(t *testing.T) {
	tableRepo, reservationRepo, stored := newTableFixture()
	stored.ID = 1
	stored.TableNumber = 7
	svc := NewTableService(tableRepo, reservationRepo, nil)

	_, err := svc.CreateTable(CreateTableRequest{
		TableNumber:     intPtr(7),
		SeatingCapacity: intPtr(2),
	})
	assert.ErrorIs(t, err, ErrTableExists)
}

func TestCreateTableValidation(t *testing.T) {
	tableRepo, reservationRepo, _ := newTableFixture()
	svc := NewTableService(tableRepo, reservationRepo, nil)

	_, err := svc.CreateTable(CreateTableRequest{TableNumber: intPtr(0), SeatingCapacity: intPtr(4)})
	assert.ErrorIs(t, err, ErrTableValidation)

	_, err = svc.CreateTable(CreateTableRequest{TableNumber: intPtr(3), SeatingCapacity: intPtr(-1)})
	assert.ErrorIs(t, err, ErrTableValidation)

	loc := "rooftop"
	_, err = svc.CreateTable(CreateTableRequest{TableNumber: intPtr(3), SeatingCapacity: intPtr(4), Location: &loc})
	assert.ErrorIs(t, err, ErrTableValidation)
}

func TestUpdateTableMergesFields(t *testing.T) {
	tableRepo, reservationRepo, stored := newTableFixture()
	stored.ID = 1
	stored.TableNumber = 5
	stored.SeatingCapacity = 4
	stored.Location = models.TableLocationIndoor
	stored.Status = models.TableStatusAvailable
	svc := NewTableService(tableRepo, reservationRepo, nil)

	status := models.TableStatusMaintenance
	updated, err := svc.UpdateTable(1, UpdateTableRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.TableNumber)
	assert.Equal(t, 4, updated.SeatingCapacity)
	assert.Equal(t, models.TableStatusMaintenance, updated.Status)
}

func TestDeleteTableRemovesReservations(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	tableRepo, reservationRepo, stored := newTableFixture()
	stored.ID = 1
	stored.TableNumber = 5

	var deletedTable int64
	var clearedTable int64
	tableRepo.deleteTable = func(id int64) error {
		deletedTable = id
		return nil
	}
	reservationRepo.deleteReservationsByTableID = func(tableID int64) (int64, error) {
		clearedTable = tableID
		return 2, nil
	}

	svc := NewTableService(tableRepo, reservationRepo, db)
	require.NoError(t, svc.DeleteTable(1))

	assert.Equal(t, int64(1), deletedTable)
	assert.Equal(t, int64(1), clearedTable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
