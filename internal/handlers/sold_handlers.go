package handlers

import (
	"errors"
	"net/http"

	"bizconsole_backend/internal/queryview"
	"bizconsole_backend/internal/services"
	"bizconsole_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SoldHandler holds the sold service.
type SoldHandler struct {
	soldService services.SoldService
}

// NewSoldHandler creates a new SoldHandler.
func NewSoldHandler(ss services.SoldService) *SoldHandler {
	return &SoldHandler{soldService: ss}
}

// SellFromInventory converts an inventory item into a sold record.
func (h *SoldHandler) SellFromInventory(c *gin.Context) {
	var req services.SellFromInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.soldService.SellFromInventory(req)
	if err != nil {
		utils.LogError(err, "SellFromInventory: Error from soldService.SellFromInventory")
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Inventory item not found"))
		case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrSoldLink):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while recording sale"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

// SellFromOrder converts an order into a sold record. The order stays put.
func (h *SoldHandler) SellFromOrder(c *gin.Context) {
	orderID, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	var req services.SellFromOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.soldService.SellFromOrder(orderID, req)
	if err != nil {
		utils.LogError(err, "SellFromOrder: Error from soldService.SellFromOrder")
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found"))
		case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrSoldLink):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while recording sale"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

// GetSoldRecords handles fetching all sold records, projected through the
// query view.
func (h *SoldHandler) GetSoldRecords(c *gin.Context) {
	params, apiErr := parseQueryViewParams(c)
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	records, err := h.soldService.GetSoldRecords()
	if err != nil {
		utils.LogError(err, "GetSoldRecords: Error from soldService.GetSoldRecords")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Server error while fetching sold records"))
		return
	}

	rows := make([]queryview.Row, len(records))
	for i := range records {
		rows[i] = viewRow([]string{records[i].BillingID, records[i].ProductID},
			records[i].ProductFields, records[i].SoldFields)
	}
	indexes, meta := queryview.Apply(rows, params)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reorder(records, indexes), "meta": meta})
}

// GetSoldRecordByID handles fetching a single sold record.
func (h *SoldHandler) GetSoldRecordByID(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	record, err := h.soldService.GetSoldRecordByID(id)
	if err != nil {
		utils.LogError(err, "GetSoldRecordByID: Error from soldService.GetSoldRecordByID")
		if errors.Is(err, services.ErrSoldNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sold record not found"))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while fetching sold record"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// AddPayment appends one payment and returns the record with its derived
// financials recomputed.
func (h *SoldHandler) AddPayment(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	var req services.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.soldService.AddPayment(id, req)
	if err != nil {
		utils.LogError(err, "AddPayment: Error from soldService.AddPayment")
		switch {
		case errors.Is(err, services.ErrSoldNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sold record not found"))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while recording payment"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment recorded successfully", "data": record})
}
