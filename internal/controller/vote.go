package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
)

func (h *Handler) CastVote(c *gin.Context) {
	// Parse request body
	var payload models.VotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.badPayload(c)
		return
	}

	if _, err := h.registrar.Cast(c.Request.Context(), payload); err != nil {
		h.respondError(c, "cast vote", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Vote recorded successfully!", nil)
}

func (h *Handler) ListVotes(c *gin.Context) {
	votes, err := h.store.ListVotes(c.Request.Context())
	if err != nil {
		h.respondError(c, "list votes", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", votes)
}
