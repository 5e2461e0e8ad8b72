package handlers

import (
	"errors"
	"net/http"

	"bizconsole_backend/internal/queryview"
	"bizconsole_backend/internal/services"
	"bizconsole_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder handles order creation, including conversion from inventory.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.CreateOrder(req)
	if err != nil {
		utils.LogError(err, "CreateOrder: Error from orderService.CreateOrder")
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Source inventory item not found"))
		case errors.Is(err, services.ErrInvalidOrderStatus), errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while creating order"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
}

// GetOrders handles fetching all orders, projected through the query view.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	params, apiErr := parseQueryViewParams(c)
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	orders, err := h.orderService.GetOrders()
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService.GetOrders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Server error while fetching orders"))
		return
	}

	rows := make([]queryview.Row, len(orders))
	for i := range orders {
		rows[i] = viewRow([]string{orders[i].OrderID}, orders[i].ProductFields, orders[i].OrderFields)
	}
	indexes, meta := queryview.Apply(rows, params)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reorder(orders, indexes), "meta": meta})
}

// GetOrderByID handles fetching a single order.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	order, err := h.orderService.GetOrderByID(id)
	if err != nil {
		utils.LogError(err, "GetOrderByID: Error from orderService.GetOrderByID")
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found"))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while fetching order"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// UpdateOrder handles a full replacement of an order's mutable attributes.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.UpdateOrder(id, req)
	if err != nil {
		utils.LogError(err, "UpdateOrder: Error from orderService.UpdateOrder")
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found"))
		case errors.Is(err, services.ErrInvalidOrderStatus), errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while updating order"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// UpdateOrderStatus handles a status change.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(id, req)
	if err != nil {
		utils.LogError(err, "UpdateOrderStatus: Error from orderService.UpdateOrderStatus")
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found"))
		case errors.Is(err, services.ErrInvalidOrderStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while updating order status"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// DeleteOrder handles hard-deleting an order.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	if err := h.orderService.DeleteOrder(id); err != nil {
		utils.LogError(err, "DeleteOrder: Error from orderService.DeleteOrder")
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found"))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while deleting order"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
}
