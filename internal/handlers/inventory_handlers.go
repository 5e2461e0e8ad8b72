package handlers

import (
	"errors"
	"image/png"
	"net/http"

	"bizconsole_backend/internal/queryview"
	"bizconsole_backend/internal/services"
	"bizconsole_backend/pkg/utils"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// CreateItem handles the creation of a new inventory item.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req services.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.Create(req)
	if err != nil {
		utils.LogError(err, "CreateItem: Error from inventoryService.Create")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while creating inventory item"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Inventory item created successfully", "data": item})
}

// GetItems handles fetching in-stock items, projected through the query view.
func (h *InventoryHandler) GetItems(c *gin.Context) {
	params, apiErr := parseQueryViewParams(c)
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	items, err := h.inventoryService.GetItems()
	if err != nil {
		utils.LogError(err, "GetItems: Error from inventoryService.GetItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Server error while fetching inventory items"))
		return
	}

	rows := make([]queryview.Row, len(items))
	for i := range items {
		rows[i] = viewRow([]string{items[i].ProductID}, items[i].Fields)
	}
	indexes, meta := queryview.Apply(rows, params)

	c.JSON(http.StatusOK, gin.H{"success": true, "items": reorder(items, indexes), "meta": meta})
}

// GetItemByID handles fetching a single inventory item.
func (h *InventoryHandler) GetItemByID(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	item, err := h.inventoryService.GetItemByID(id)
	if err != nil {
		utils.LogError(err, "GetItemByID: Error from inventoryService.GetItemByID")
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Inventory item not found"))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while fetching inventory item"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// UpdateItem handles a full replace of an item's field values, plus the cost
// price when provided.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	var req services.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.Update(id, req)
	if err != nil {
		utils.LogError(err, "UpdateItem: Error from inventoryService.Update")
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Inventory item not found"))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while updating inventory item"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Inventory item updated successfully", "data": item})
}

// DeleteItem marks an item out of stock. The row stays for history.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	if err := h.inventoryService.SoftDelete(id); err != nil {
		utils.LogError(err, "DeleteItem: Error from inventoryService.SoftDelete")
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Inventory item not found"))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while updating inventory stock state"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item marked as out of stock"})
}

// GetBarcode renders a code128 barcode PNG for a product ID.
func (h *InventoryHandler) GetBarcode(c *gin.Context) {
	productID := c.Param("productID")
	if utils.IsEmpty(productID) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"productID is required"))
		return
	}

	code, err := code128.Encode(productID)
	if err != nil {
		utils.LogError(err, "GetBarcode: failed to encode barcode for "+productID)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to generate barcode"))
		return
	}
	scaled, err := barcode.Scale(code, 400, 120)
	if err != nil {
		utils.LogError(err, "GetBarcode: failed to scale barcode for "+productID)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to generate barcode"))
		return
	}

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := png.Encode(c.Writer, scaled); err != nil {
		utils.LogError(err, "GetBarcode: failed to write barcode PNG for "+productID)
	}
}
