package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/results"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/utils"
)

const msgFormNotFound = "Form ID not found! Please check the ID and try again."

type electionData struct {
	election   *models.ElectionForm
	votes      []models.Vote
	candidates []models.Candidate
}

type fetchResult struct {
	votes      []models.Vote
	candidates []models.Candidate
	election   *models.ElectionForm
	err        error
}

// loadElection reads votes, candidates and the election record for formID
// concurrently. A missing election record is not an error.
func (h *Handler) loadElection(ctx context.Context, formID string) (*electionData, error) {
	votesCh := make(chan fetchResult, 1)
	candCh := make(chan fetchResult, 1)
	elecCh := make(chan fetchResult, 1)

	go func() {
		v, err := h.store.ListVotesByElection(ctx, formID)
		votesCh <- fetchResult{votes: v, err: err}
	}()
	go func() {
		cs, err := h.store.ListCandidatesByElection(ctx, formID)
		candCh <- fetchResult{candidates: cs, err: err}
	}()
	go func() {
		e, err := h.store.FindElection(ctx, formID)
		if errors.Is(err, store.ErrNotFound) {
			err = nil
		}
		elecCh <- fetchResult{election: e, err: err}
	}()

	vr, cr, er := <-votesCh, <-candCh, <-elecCh
	if err := errors.Join(vr.err, cr.err, er.err); err != nil {
		return nil, err
	}
	return &electionData{election: er.election, votes: vr.votes, candidates: cr.candidates}, nil
}

// Results aggregates one election: vote counts, winner and tally.
func (h *Handler) Results(c *gin.Context) {
	formID := c.Param("formId")

	data, err := h.loadElection(c.Request.Context(), formID)
	if err != nil {
		h.respondError(c, "results", err)
		return
	}
	if data.election == nil && len(data.votes) == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, msgFormNotFound, nil)
		return
	}

	res := results.Aggregate(formID, data.votes, data.candidates)
	if data.election != nil && res.FormTitle == "" {
		res.FormTitle = data.election.Title
		if res.Winner != nil {
			res.Winner.FormTitle = res.FormTitle
		}
	}
	utils.SuccessResponse(c, http.StatusOK, "", res)
}

// CandidateResults lists the individual votes for one candidate.
func (h *Handler) CandidateResults(c *gin.Context) {
	formID := c.Param("formId")

	data, err := h.loadElection(c.Request.Context(), formID)
	if err != nil {
		h.respondError(c, "candidate results", err)
		return
	}
	if data.election == nil && len(data.votes) == 0 {
		utils.ErrorResponse(c, http.StatusNotFound, msgFormNotFound, nil)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "",
		results.Details(formID, c.Param("candidateUid"), data.votes, data.candidates))
}
