package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
)

func (h *Handler) CreateVoter(c *gin.Context) {
	var v models.Voter
	if err := c.ShouldBindJSON(&v); err != nil {
		h.badPayload(c)
		return
	}
	v.Normalize()

	if err := h.validator.Voter(v); err != nil {
		h.respondError(c, "create voter", err)
		return
	}

	v.ID = ""
	v.CreatedAt = h.opts.Now()
	v.UpdatedAt = v.CreatedAt
	if err := h.store.CreateVoter(c.Request.Context(), &v); err != nil {
		h.respondError(c, "create voter", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Voter uploaded successfully!", nil)
}

func (h *Handler) ListVoters(c *gin.Context) {
	voters, err := h.store.ListVoters(c.Request.Context())
	if err != nil {
		h.respondError(c, "list voters", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", voters)
}

// VerifyVoter looks a voter up by the user_id shown at the voting booth.
func (h *Handler) VerifyVoter(c *gin.Context) {
	voter, err := h.store.FindVoter(c.Request.Context(), c.Param("userId"))
	if errors.Is(err, store.ErrNotFound) {
		utils.ErrorResponse(c, http.StatusNotFound, "Invalid UID. Voter not found.", nil)
		return
	}
	if err != nil {
		h.respondError(c, "verify voter", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Voter verified", voter)
}
