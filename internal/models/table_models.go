package models

import "time"

// Table locations.
const (
	TableLocationIndoor  = "indoor"
	TableLocationOutdoor = "outdoor"
	TableLocationVIP     = "vip"
	TableLocationBalcony = "balcony"
)

// Table statuses.
const (
	TableStatusAvailable   = "available"
	TableStatusOccupied    = "occupied"
	TableStatusReserved    = "reserved"
	TableStatusMaintenance = "maintenance"
)

// Reservation statuses.
const (
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusPending   = "pending"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
	ReservationStatusNoShow    = "no_show"
)

// IsValidTableLocation checks if the provided location is known.
func IsValidTableLocation(location string) bool {
	switch location {
	case TableLocationIndoor, TableLocationOutdoor, TableLocationVIP, TableLocationBalcony:
		return true
	default:
		return false
	}
}

// IsValidTableStatus checks if the provided status is a known table status.
func IsValidTableStatus(status string) bool {
	switch status {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusMaintenance:
		return true
	default:
		return false
	}
}

// IsValidReservationStatus checks if the provided status is a known reservation status.
func IsValidReservationStatus(status string) bool {
	switch status {
	case ReservationStatusConfirmed, ReservationStatusPending, ReservationStatusCancelled,
		ReservationStatusCompleted, ReservationStatusNoShow:
		return true
	default:
		return false
	}
}

// Table represents a physical cafe table.
type Table struct {
	ID              int64         `json:"id"`
	TableNumber     int           `json:"tableNumber" db:"table_number"`
	SeatingCapacity int           `json:"seatingCapacity" db:"seating_capacity"`
	Location        string        `json:"location" db:"location"`
	Status          string        `json:"status" db:"status"`
	Description     *string       `json:"description,omitempty" db:"description"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
	Reservations    []Reservation `json:"reservations"`
}

// Reservation represents a booking of one table.
type Reservation struct {
	ID                int64     `json:"id"`
	ReservationNumber string    `json:"reservationNumber" db:"reservation_number"`
	TableID           int64     `json:"tableId" db:"table_id"`
	CustomerName      string    `json:"customerName" db:"customer_name"`
	CustomerPhone     string    `json:"customerPhone" db:"customer_phone"`
	CustomerEmail     *string   `json:"customerEmail,omitempty" db:"customer_email"`
	PartySize         int       `json:"partySize" db:"party_size"`
	ReservationDate   string    `json:"reservationDate" db:"reservation_date"` // YYYY-MM-DD
	ReservationTime   string    `json:"reservationTime" db:"reservation_time"` // HH:MM
	Duration          int       `json:"duration" db:"duration"`                // minutes
	Status            string    `json:"status" db:"status"`
	SpecialRequests   *string   `json:"specialRequests,omitempty" db:"special_requests"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
	Table             *Table    `json:"table,omitempty"`
}

// TableFilters defines the available filters for querying tables.
type TableFilters struct {
	Status   *string `form:"status"`
	Location *string `form:"location"`
}

// ReservationFilters defines the available filters for querying reservations.
type ReservationFilters struct {
	Status *string `form:"status"`
	Date   *string `form:"date"` // YYYY-MM-DD
}
