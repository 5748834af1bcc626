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

// TableHandler holds the table service.
type TableHandler struct {
	tableService services.TableService
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(ts services.TableService) *TableHandler {
	return &TableHandler{tableService: ts}
}

// CreateTable handles registering a new cafe table.
func (h *TableHandler) CreateTable(c *gin.Context) {
	var req services.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	table, err := h.tableService.CreateTable(req)
	if err != nil {
		if errors.Is(err, services.ErrTableExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Table with this number already exists.", err.Error()))
		} else if errors.Is(err, services.ErrTableValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateTable: Error from tableService.CreateTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, table)
}

// GetTables handles listing tables with optional status and location filters.
// Public endpoint.
func (h *TableHandler) GetTables(c *gin.Context) {
	var filters models.TableFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}

	tables, err := h.tableService.GetTables(filters)
	if err != nil {
		utils.LogError(err, "GetTables: Error from tableService.GetTables")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tables.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, tables)
}

// GetTableByID handles fetching a single table with its reservations.
func (h *TableHandler) GetTableByID(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	table, err := h.tableService.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		} else {
			utils.LogError(err, "GetTableByID: Error from tableService.GetTableByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTable handles partial updates of a table.
func (h *TableHandler) UpdateTable(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	var req services.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	table, err := h.tableService.UpdateTable(tableID, req)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		} else if errors.Is(err, services.ErrTableExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Table with this number already exists.", err.Error()))
		} else if errors.Is(err, services.ErrTableValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateTable: Error from tableService.UpdateTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// DeleteTable handles removing a table and its reservations.
func (h *TableHandler) DeleteTable(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	if err := h.tableService.DeleteTable(tableID); err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", ""))
		} else {
			utils.LogError(err, "DeleteTable: Error from tableService.DeleteTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted successfully"})
}
