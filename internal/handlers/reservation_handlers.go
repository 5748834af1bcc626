package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cafe_backend/internal/models"
	"cafe_backend/internal/services"
	"cafe_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler holds the reservation service.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

// CreateReservation handles booking a table.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reservation, err := h.reservationService.CreateReservation(req)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		} else if errors.Is(err, services.ErrReservationValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateReservation: Error from reservationService.CreateReservation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create reservation.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations handles listing reservations with optional status and date
// filters. Public endpoint.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	var filters models.ReservationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}

	reservations, err := h.reservationService.GetReservations(filters)
	if err != nil {
		utils.LogError(err, "GetReservations: Error from reservationService.GetReservations")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservations.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservationByID handles fetching a single reservation with its table.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	reservation, err := h.reservationService.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", ""))
		} else {
			utils.LogError(err, "GetReservationByID: Error from reservationService.GetReservationByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch reservation.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation handles partial updates of a reservation, including
// status transitions that release the held table.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	var req services.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	reservation, err := h.reservationService.UpdateReservation(reservationID, req)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", ""))
		} else if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		} else if errors.Is(err, services.ErrReservationValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateReservation: Error from reservationService.UpdateReservation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update reservation.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation handles removing a reservation and releasing its table.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	reservationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid reservation ID format.", err.Error()))
		return
	}

	if err := h.reservationService.DeleteReservation(reservationID); err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Reservation not found.", ""))
		} else {
			utils.LogError(err, "DeleteReservation: Error from reservationService.DeleteReservation")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete reservation.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}
