package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/utils"
	"github.com/saxenaaman628/online-voting-system/internal/validation"
)

type fieldCheck struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ValidateField runs one rule so interactive clients show the same
// messages the write endpoints enforce.
func (h *Handler) ValidateField(c *gin.Context) {
	var req fieldCheck
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c)
		return
	}

	msg, err := h.validator.Field(validation.Entity(c.Param("entity")), req.Field, req.Value)
	if errors.Is(err, validation.ErrUnknownField) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unknown field", nil)
		return
	}
	if msg != "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Validation Error", validation.FieldErrors{req.Field: msg})
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", nil)
}
