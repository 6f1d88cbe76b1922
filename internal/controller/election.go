package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
)

func (h *Handler) CreateElection(c *gin.Context) {
	var e models.ElectionForm
	if err := c.ShouldBindJSON(&e); err != nil {
		h.badPayload(c)
		return
	}
	e.Normalize()

	if err := h.validator.Election(e); err != nil {
		h.respondError(c, "create election", err)
		return
	}

	e.ID = ""
	e.CreatedAt = h.opts.Now()
	e.UpdatedAt = e.CreatedAt
	if err := h.store.CreateElection(c.Request.Context(), &e); err != nil {
		h.respondError(c, "create election", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Form Data uploaded successfully", nil)
}

func (h *Handler) ListElections(c *gin.Context) {
	elections, err := h.store.ListElections(c.Request.Context())
	if err != nil {
		h.respondError(c, "list elections", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", elections)
}

// GetElection returns one election with its candidates and whether it has
// expired.
func (h *Handler) GetElection(c *gin.Context) {
	ctx := c.Request.Context()

	e, err := h.store.FindElection(ctx, c.Param("uid"))
	if errors.Is(err, store.ErrNotFound) {
		utils.ErrorResponse(c, http.StatusNotFound, "Election not found", nil)
		return
	}
	if err != nil {
		h.respondError(c, "get election", err)
		return
	}

	candidates, err := h.store.ListCandidatesByElection(ctx, e.Uid)
	if err != nil {
		h.respondError(c, "get election", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", models.ElectionWithCandidates{
		Election:   *e,
		Candidates: candidates,
		Expired:    e.Expired(h.opts.Now()),
	})
}
