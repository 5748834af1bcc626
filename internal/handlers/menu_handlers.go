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

// MenuHandler holds the menu service and the upload directory for item images.
type MenuHandler struct {
	menuService services.MenuService
	uploadDir   string
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService, uploadDir string) *MenuHandler {
	return &MenuHandler{menuService: ms, uploadDir: uploadDir}
}

// CreateMenuItem handles adding a menu item. The request is multipart form
// data so an image can be attached under the "image" field.
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	imagePath, err := utils.SaveUploadedImage(c, "image", h.uploadDir)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid image upload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.menuService.CreateMenuItem(req, imagePath)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Menu item with this name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrMenuValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "CreateMenuItem: Error from menuService.CreateMenuItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create menu item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetMenuItems handles listing menu items with optional category and
// availability filters. Public endpoint.
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	var filters models.MenuItemFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid query parameters.", err.Error()))
		return
	}

	items, err := h.menuService.GetMenuItems(filters)
	if err != nil {
		if errors.Is(err, services.ErrMenuValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "GetMenuItems: Error from menuService.GetMenuItems")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu items.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItemByID handles fetching a single menu item. Public endpoint.
func (h *MenuHandler) GetMenuItemByID(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	item, err := h.menuService.GetMenuItemByID(itemID)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", ""))
		} else {
			utils.LogError(err, "GetMenuItemByID: Error from menuService.GetMenuItemByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateMenuItem handles partial updates of a menu item, optionally replacing
// its image.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	var req services.UpdateMenuItemRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	imagePath, err := utils.SaveUploadedImage(c, "image", h.uploadDir)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid image upload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.menuService.UpdateMenuItem(itemID, req, imagePath)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", ""))
		} else if errors.Is(err, services.ErrMenuItemExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Menu item with this name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrMenuValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "UpdateMenuItem: Error from menuService.UpdateMenuItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update menu item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles removing a menu item.
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item ID format.", err.Error()))
		return
	}

	if err := h.menuService.DeleteMenuItem(itemID); err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", ""))
		} else {
			utils.LogError(err, "DeleteMenuItem: Error from menuService.DeleteMenuItem")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete menu item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
