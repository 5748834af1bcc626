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

// StockHandler holds the stock service.
type StockHandler struct {
	stockService services.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(ss services.StockService) *StockHandler {
	return &StockHandler{stockService: ss}
}

// CreateStockItem handles adding an inventory record.
func (h *StockHandler) CreateStockItem(c *gin.Context) {
	var req services.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.stockService.CreateStockItem(req)
	if err != nil {
		if errors.Is(err, services.ErrStockValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateStockItem: Error from stockService.CreateStockItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create stock item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetStockItems handles listing inventory records with optional status and
// category filters.
func (h *StockHandler) GetStockItems(c *gin.Context) {
	var filters models.StockFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}

	items, err := h.stockService.GetStockItems(filters)
	if err != nil {
		utils.LogError(err, "GetStockItems: Error from stockService.GetStockItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetLowStockAlerts handles listing items that are low or out of stock.
func (h *StockHandler) GetLowStockAlerts(c *gin.Context) {
	items, err := h.stockService.GetLowStockAlerts()
	if err != nil {
		utils.LogError(err, "GetLowStockAlerts: Error from stockService.GetLowStockAlerts")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch low stock alerts.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetStockItemByID handles fetching a single inventory record.
func (h *StockHandler) GetStockItemByID(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid stock item ID format.", err.Error()))
		return
	}

	item, err := h.stockService.GetStockItemByID(itemID)
	if err != nil {
		if errors.Is(err, services.ErrStockItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Stock item not found.", ""))
		} else {
			utils.LogError(err, "GetStockItemByID: Error from stockService.GetStockItemByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateStockItem handles partial updates of an inventory record.
func (h *StockHandler) UpdateStockItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid stock item ID format.", err.Error()))
		return
	}

	var req services.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.stockService.UpdateStockItem(itemID, req)
	if err != nil {
		if errors.Is(err, services.ErrStockItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Stock item not found.", ""))
		} else if errors.Is(err, services.ErrStockValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateStockItem: Error from stockService.UpdateStockItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update stock item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteStockItem handles removing an inventory record.
func (h *StockHandler) DeleteStockItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid stock item ID format.", err.Error()))
		return
	}

	if err := h.stockService.DeleteStockItem(itemID); err != nil {
		if errors.Is(err, services.ErrStockItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Stock item not found.", ""))
		} else {
			utils.LogError(err, "DeleteStockItem: Error from stockService.DeleteStockItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete stock item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock item deleted successfully"})
}
