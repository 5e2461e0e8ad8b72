package handlers

import (
	"errors"
	"net/http"

	"bizconsole_backend/internal/models"
	"bizconsole_backend/internal/services"
	"bizconsole_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FieldHandler holds the field catalog service.
type FieldHandler struct {
	fieldService services.FieldService
}

// NewFieldHandler creates a new FieldHandler.
func NewFieldHandler(fs services.FieldService) *FieldHandler {
	return &FieldHandler{fieldService: fs}
}

// CreateField handles the creation of a new input field.
func (h *FieldHandler) CreateField(c *gin.Context) {
	var req services.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	field, err := h.fieldService.CreateField(req)
	if err != nil {
		utils.LogError(err, "CreateField: Error from fieldService.CreateField")
		switch {
		case errors.Is(err, services.ErrDuplicateLabel):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Field label already exists"))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while creating field"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": field})
}

// GetFields handles fetching all input fields, newest first. Section
// filtering and serialNo ordering are the caller's concern.
func (h *FieldHandler) GetFields(c *gin.Context) {
	fields, err := h.fieldService.GetFields()
	if err != nil {
		utils.LogError(err, "GetFields: Error from fieldService.GetFields")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Server error while fetching fields"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "fields": fields})
}

// UpdateField handles a full replacement of a field's mutable attributes.
func (h *FieldHandler) UpdateField(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	var req services.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	field, err := h.fieldService.UpdateField(id, req)
	if err != nil {
		utils.LogError(err, "UpdateField: Error from fieldService.UpdateField")
		switch {
		case errors.Is(err, services.ErrFieldNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Input field not found"))
		case errors.Is(err, services.ErrDuplicateLabel):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Field label already exists"))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Server error while updating input field"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Field updated successfully", "field": field})
}

// UpdateSelectOptions replaces a select field's option list wholesale.
func (h *FieldHandler) UpdateSelectOptions(c *gin.Context) {
	fieldID, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	var req struct {
		Options []models.SelectOption `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error()))
		return
	}

	field, err := h.fieldService.UpdateSelectOptions(fieldID, req.Options)
	if err != nil {
		utils.LogError(err, "UpdateSelectOptions: Error from fieldService.UpdateSelectOptions")
		switch {
		case errors.Is(err, services.ErrFieldNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Field not found"))
		case errors.Is(err, services.ErrNotSelectField):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Not a select field"))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Error updating select options"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": field})
}

// DeleteField hard-deletes a field definition.
func (h *FieldHandler) DeleteField(c *gin.Context) {
	id, apiErr := parseUUIDParam(c, "id")
	if apiErr != nil {
		utils.RespondWithError(c, apiErr)
		return
	}

	if err := h.fieldService.DeleteField(id); err != nil {
		utils.LogError(err, "DeleteField: Error from fieldService.DeleteField")
		if errors.Is(err, services.ErrFieldNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Field not found"))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Error deleting field"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Field deleted successfully"})
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, *utils.APIError) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid "+name+" format")
	}
	return id, nil
}
