// Package store defines the persistence contract shared by the redis, mongo
// and SQL backends. Every collection is insert-only; uniqueness is enforced
// by the backend itself so that concurrent writers across processes cannot
// slip a duplicate past a read-then-write check.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/saxenaaman628/online-voting-system/internal/models"
)

// Collection names, shared by all backends for keys, collections and tables.
const (
	Users      = "users"
	Voters     = "voters"
	Elections  = "formdatas"
	Candidates = "candidatedatas"
	Votes      = "votingdatas"
	Images     = "images"
)

// Unique field names reported in DuplicateKeyError.
const (
	FieldEmail     = "email"
	FieldUserID    = "user_id"
	FieldUid       = "Uid"
	FieldVoteTuple = "vote"
)

var ErrNotFound = errors.New("record not found")

// DuplicateKeyError reports a violated uniqueness constraint.
type DuplicateKeyError struct {
	Collection string
	Field      string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate %s in %s", e.Field, e.Collection)
}

// IsDuplicate reports whether err is a DuplicateKeyError and returns it.
func IsDuplicate(err error) (*DuplicateKeyError, bool) {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}

type Store interface {
	// CreateUser fails with DuplicateKeyError{Field: email} when the
	// lowercased email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	FindUser(ctx context.Context, email, userType string) (*models.User, error)

	CreateVoter(ctx context.Context, v *models.Voter) error
	ListVoters(ctx context.Context) ([]models.Voter, error)
	FindVoter(ctx context.Context, userID string) (*models.Voter, error)

	CreateElection(ctx context.Context, e *models.ElectionForm) error
	ListElections(ctx context.Context) ([]models.ElectionForm, error)
	FindElection(ctx context.Context, uid string) (*models.ElectionForm, error)

	CreateCandidate(ctx context.Context, c *models.Candidate) error
	ListCandidates(ctx context.Context) ([]models.Candidate, error)
	ListCandidatesByElection(ctx context.Context, formID string) ([]models.Candidate, error)

	// InsertVote fails with DuplicateKeyError{Field: vote} when the
	// (candidateUid, voterId, formId) triple already exists.
	InsertVote(ctx context.Context, v *models.Vote) error
	ListVotes(ctx context.Context) ([]models.Vote, error)
	ListVotesByElection(ctx context.Context, formID string) ([]models.Vote, error)

	SaveImage(ctx context.Context, img *models.Image) error
	LatestImage(ctx context.Context) (*models.Image, error)

	Ping(ctx context.Context) error
	Close() error
}
