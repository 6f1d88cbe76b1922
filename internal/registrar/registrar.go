// Package registrar records votes. At most one vote exists per
// (candidateUid, voterId, formId); the store's unique constraint decides
// races, so the registrar never checks before inserting.
package registrar

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/validation"
)

var (
	ErrDuplicateVote  = errors.New("duplicate vote")
	ErrElectionClosed = errors.New("election closed")
)

type Registrar struct {
	store         store.Store
	validator     *validation.Validator
	now           func() time.Time
	enforceExpiry bool
}

type Option func(*Registrar)

// WithExpiry controls whether votes for an expired election are refused.
func WithExpiry(enforce bool) Option {
	return func(r *Registrar) { r.enforceExpiry = enforce }
}

func New(s store.Store, v *validation.Validator, now func() time.Time, opts ...Option) *Registrar {
	if now == nil {
		now = time.Now
	}
	r := &Registrar{store: s, validator: v, now: now, enforceExpiry: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cast validates p and inserts one vote with value 1.
func (r *Registrar) Cast(ctx context.Context, p models.VotePayload) (*models.Vote, error) {
	p = models.VotePayload{
		CandidateUID: strings.TrimSpace(p.CandidateUID),
		VoterID:      strings.TrimSpace(p.VoterID),
		FormID:       strings.TrimSpace(p.FormID),
		FormTitle:    strings.TrimSpace(p.FormTitle),
	}
	if err := r.validator.Vote(p); err != nil {
		return nil, err
	}

	now := r.now()
	if r.enforceExpiry {
		if err := r.checkOpen(ctx, p.FormID, now); err != nil {
			return nil, err
		}
	}

	v := &models.Vote{
		CandidateUID: p.CandidateUID,
		VoterID:      p.VoterID,
		FormID:       p.FormID,
		FormTitle:    p.FormTitle,
		Vote:         1,
		CreatedAt:    now,
	}
	if err := r.store.InsertVote(ctx, v); err != nil {
		if _, ok := store.IsDuplicate(err); ok {
			slog.Info("Duplicate vote rejected",
				"candidateUid", v.CandidateUID, "voterId", v.VoterID, "formId", v.FormID)
			return nil, ErrDuplicateVote
		}
		return nil, err
	}
	return v, nil
}

// checkOpen refuses votes once the election has expired. Unknown elections
// are let through.
func (r *Registrar) checkOpen(ctx context.Context, formID string, now time.Time) error {
	e, err := r.store.FindElection(ctx, formID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if e.Expired(now) {
		return ErrElectionClosed
	}
	return nil
}
