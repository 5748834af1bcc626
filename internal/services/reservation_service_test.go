package services

import (
	"testing"

	"cafe_backend/internal/models"
	"cafe_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationUnknownTable(t *testing.T) {
	tableRepo := &fakeTableRepo{
		getTableByID: func(id int64) (*models.Table, error) {
			return nil, repositories.ErrNotFound
		},
	}
	svc := NewReservationService(&fakeReservationRepo{}, tableRepo, nil)

	_, err := svc.CreateReservation(CreateReservationRequest{
		TableID: 99, CustomerName: "Jane", CustomerPhone: "555-0101",
		ReservationDate: "2026-09-01", ReservationTime: "18:00",
	})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCreateReservationPartySizeExceedsCapacity(t *testing.T) {
	tableRepo := &fakeTableRepo{
		getTableByID: func(id int64) (*models.Table, error) {
			return &models.Table{ID: id, TableNumber: 3, SeatingCapacity: 4}, nil
		},
	}
	svc := NewReservationService(&fakeReservationRepo{}, tableRepo, nil)

	_, err := svc.CreateReservation(CreateReservationRequest{
		TableID: 3, CustomerName: "Jane", CustomerPhone: "555-0101",
		PartySize:       intPtr(6),
		ReservationDate: "2026-09-01", ReservationTime: "18:00",
	})
	assert.ErrorIs(t, err, ErrReservationValidation)
	assert.Contains(t, err.Error(), "capacity of 4")
}

func TestCreateReservationMarksTableReserved(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var stored models.Reservation
	reservationRepo := &fakeReservationRepo{
		createReservation: func(reservation *models.Reservation) (int64, error) {
			reservation.ID = 1
			stored = *reservation
			return 1, nil
		},
		getReservationByID: func(id int64) (*models.Reservation, error) {
			copied := stored
			return &copied, nil
		},
	}
	var statusUpdates []string
	tableRepo := &fakeTableRepo{
		getTableByID: func(id int64) (*models.Table, error) {
			return &models.Table{ID: id, TableNumber: 3, SeatingCapacity: 4, Status: models.TableStatusAvailable}, nil
		},
		updateTableStatus: func(id int64, status string) error {
			statusUpdates = append(statusUpdates, status)
			return nil
		},
	}
	svc := NewReservationService(reservationRepo, tableRepo, db)

	reservation, err := svc.CreateReservation(CreateReservationRequest{
		TableID: 3, CustomerName: "Jane", CustomerPhone: "555-0101",
		ReservationDate: "2026-09-01", ReservationTime: "18:00",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{models.TableStatusReserved}, statusUpdates)
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
	assert.Equal(t, defaultPartySize, reservation.PartySize)
	assert.Equal(t, defaultReservationDuration, reservation.Duration)
	assert.NotEmpty(t, reservation.ReservationNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReservationCancellationReleasesHeldTable(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	stored := models.Reservation{
		ID: 1, TableID: 3, CustomerName: "Jane", CustomerPhone: "555-0101",
		PartySize: 2, ReservationDate: "2026-09-01", ReservationTime: "18:00",
		Duration: 60, Status: models.ReservationStatusConfirmed,
	}
	reservationRepo := &fakeReservationRepo{
		getReservationByID: func(id int64) (*models.Reservation, error) {
			copied := stored
			return &copied, nil
		},
		updateReservation: func(reservation *models.Reservation) error {
			stored = *reservation
			return nil
		},
	}
	var releasedTableID int64
	var releasedStatus string
	tableRepo := &fakeTableRepo{
		getTableByID: func(id int64) (*models.Table, error) {
			return &models.Table{ID: id, TableNumber: 7, SeatingCapacity: 4}, nil
		},
		updateTableStatus: func(id int64, status string) error {
			releasedTableID = id
			releasedStatus = status
			return nil
		},
	}
	svc := NewReservationService(reservationRepo, tableRepo, db)

	// Move the booking to another table and cancel in the same request: the
	// table that was being held (the old one) is the one released.
	newTable := int64(8)
	cancelled := models.ReservationStatusCancelled
	_, err := svc.UpdateReservation(1, UpdateReservationRequest{
		TableID: &newTable,
		Status:  &cancelled,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), releasedTableID)
	assert.Equal(t, models.TableStatusAvailable, releasedStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReservationReleasesTable(t *testing.T) {
	db, mock := newTxDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	reservationRepo := &fakeReservationRepo{
		getReservationByID: func(id int64) (*models.Reservation, error) {
			return &models.Reservation{ID: id, TableID: 5}, nil
		},
		deleteReservation: func(id int64) error { return nil },
	}
	var releasedTableID int64
	tableRepo := &fakeTableRepo{
		updateTableStatus: func(id int64, status string) error {
			releasedTableID = id
			assert.Equal(t, models.TableStatusAvailable, status)
			return nil
		},
	}
	svc := NewReservationService(reservationRepo, tableRepo, db)

	require.NoError(t, svc.DeleteReservation(1))
	assert.Equal(t, int64(5), releasedTableID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
