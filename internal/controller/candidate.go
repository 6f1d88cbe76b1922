package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
	"github.com/saxenaaman628/online-voting-system/internal/validation"
)

const msgCandidatesFull = "All candidates for this election have already been registered"

// CreateCandidate registers one candidate into an existing election, up to
// the election's numCandidates.
func (h *Handler) CreateCandidate(c *gin.Context) {
	ctx := c.Request.Context()

	var cand models.Candidate
	if err := c.ShouldBindJSON(&cand); err != nil {
		h.badPayload(c)
		return
	}

	cand.Normalize()

	fieldErrs := validation.FieldErrors{}
	if err := h.validator.Candidate(cand); err != nil {
		if !errors.As(err, &fieldErrs) {
			h.respondError(c, "create candidate", err)
			return
		}
	}

	var election *models.ElectionForm
	if _, bad := fieldErrs["Form_Id"]; !bad {
		e, err := h.store.FindElection(ctx, cand.FormID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			fieldErrs["Form_Id"] = "Form ID does not match any election"
		case err != nil:
			h.respondError(c, "create candidate", err)
			return
		default:
			election = e
		}
	}
	if len(fieldErrs) > 0 {
		h.respondError(c, "create candidate", fieldErrs)
		return
	}

	existing, err := h.store.ListCandidatesByElection(ctx, election.Uid)
	if err != nil {
		h.respondError(c, "create candidate", err)
		return
	}
	if len(existing) >= int(election.NumCandidates) {
		utils.ErrorResponse(c, http.StatusBadRequest, msgCandidatesFull, nil)
		return
	}

	cand.ID = ""
	cand.CreatedAt = h.opts.Now()
	cand.UpdatedAt = cand.CreatedAt
	if err := h.store.CreateCandidate(ctx, &cand); err != nil {
		h.respondError(c, "create candidate", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Candidate uploaded successfully!", nil)
}

func (h *Handler) ListCandidates(c *gin.Context) {
	candidates, err := h.store.ListCandidates(c.Request.Context())
	if err != nil {
		h.respondError(c, "list candidates", err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", candidates)
}
