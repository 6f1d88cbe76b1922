package sqlstore_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/sqlstore"
	"github.com/saxenaaman628/online-voting-system/internal/store"
	"github.com/saxenaaman628/online-voting-system/internal/testutil"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := sqlstore.Open(context.Background(), "mysql", "")
	assert.Error(t, err)
}

func TestVoterRoundTrip(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	v := testutil.Voter()
	v.Image = "data:image/png;base64,AAAA"
	v.CreatedAt, v.UpdatedAt = testutil.Now, testutil.Now
	require.NoError(t, s.CreateVoter(ctx, &v))
	assert.NotEmpty(t, v.ID)

	voters, err := s.ListVoters(ctx)
	require.NoError(t, err)
	require.Len(t, voters, 1)
	assert.Equal(t, v, voters[0])

	found, err := s.FindVoter(ctx, "VOTER0001")
	require.NoError(t, err)
	assert.Equal(t, v, *found)

	_, err = s.FindVoter(ctx, "VOTER9999")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCandidateRoundTrip(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	var want []models.Candidate
	for i, c := range testutil.Candidates() {
		c.CreatedAt = testutil.Now.Add(time.Duration(i) * time.Second)
		c.UpdatedAt = c.CreatedAt
		require.NoError(t, s.CreateCandidate(ctx, &c))
		want = append(want, c)
	}

	other := testutil.Candidate("CAND0000003", "Other Person", "other@example.com", "9000000000")
	other.FormID = "FORM0000002"
	other.CreatedAt = testutil.Now.Add(time.Minute)
	other.UpdatedAt = other.CreatedAt
	require.NoError(t, s.CreateCandidate(ctx, &other))

	got, err := s.ListCandidatesByElection(ctx, "FORM0000001")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	all, err := s.ListCandidates(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestElectionRoundTrip(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	e := testutil.Election()
	e.CreatedAt, e.UpdatedAt = testutil.Now, testutil.Now
	require.NoError(t, s.CreateElection(ctx, &e))

	found, err := s.FindElection(ctx, "FORM0000001")
	require.NoError(t, err)
	assert.Equal(t, e, *found)

	list, err := s.ListElections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.ElectionForm{e}, list)

	_, err = s.FindElection(ctx, "FORM9999999")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUniqueConstraints(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		run        func(s *sqlstore.Store) error
		collection string
		field      string
	}{
		{
			name: "user email",
			run: func(s *sqlstore.Store) error {
				a := models.User{Username: "alice", Email: "a@b.com", PasswordHash: "x", UserType: "voter"}
				b := models.User{Username: "bob", Email: "a@b.com", PasswordHash: "y", UserType: "candidate"}
				if err := s.CreateUser(ctx, &a); err != nil {
					return err
				}
				return s.CreateUser(ctx, &b)
			},
			collection: store.Users,
			field:      store.FieldEmail,
		},
		{
			name: "voter user_id",
			run: func(s *sqlstore.Store) error {
				a, b := testutil.Voter(), testutil.Voter()
				b.Email = "someone.else@example.com"
				if err := s.CreateVoter(ctx, &a); err != nil {
					return err
				}
				return s.CreateVoter(ctx, &b)
			},
			collection: store.Voters,
			field:      store.FieldUserID,
		},
		{
			name: "voter email",
			run: func(s *sqlstore.Store) error {
				a, b := testutil.Voter(), testutil.Voter()
				b.UserID = "VOTER0002"
				if err := s.CreateVoter(ctx, &a); err != nil {
					return err
				}
				return s.CreateVoter(ctx, &b)
			},
			collection: store.Voters,
			field:      store.FieldEmail,
		},
		{
			name: "election Uid",
			run: func(s *sqlstore.Store) error {
				a, b := testutil.Election(), testutil.Election()
				b.Title = "School Board"
				if err := s.CreateElection(ctx, &a); err != nil {
					return err
				}
				return s.CreateElection(ctx, &b)
			},
			collection: store.Elections,
			field:      store.FieldUid,
		},
		{
			name: "candidate Uid",
			run: func(s *sqlstore.Store) error {
				a := testutil.Candidate("CAND0000001", "Jane Roe", "jane@example.com", "9123456780")
				b := testutil.Candidate("CAND0000001", "Jane Doe", "doe@example.com", "9123456780")
				if err := s.CreateCandidate(ctx, &a); err != nil {
					return err
				}
				return s.CreateCandidate(ctx, &b)
			},
			collection: store.Candidates,
			field:      store.FieldUid,
		},
		{
			name: "vote triple",
			run: func(s *sqlstore.Store) error {
				a, b := testutil.Vote("CAND0000001", "VOTER0001"), testutil.Vote("CAND0000001", "VOTER0001")
				if err := s.InsertVote(ctx, &a); err != nil {
					return err
				}
				return s.InsertVote(ctx, &b)
			},
			collection: store.Votes,
			field:      store.FieldVoteTuple,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.NewSQLiteStore(t)

			err := tt.run(s)
			dup, ok := store.IsDuplicate(err)
			require.True(t, ok, "expected duplicate error, got %v", err)
			assert.Equal(t, tt.collection, dup.Collection)
			assert.Equal(t, tt.field, dup.Field)
		})
	}
}

func TestVoteTripleAllowsOtherCandidates(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	a := testutil.Vote("CAND0000001", "VOTER0001")
	b := testutil.Vote("CAND0000002", "VOTER0001")
	require.NoError(t, s.InsertVote(ctx, &a))
	require.NoError(t, s.InsertVote(ctx, &b))

	votes, err := s.ListVotesByElection(ctx, "FORM0000001")
	require.NoError(t, err)
	assert.Len(t, votes, 2)

	votes, err = s.ListVotesByElection(ctx, "FORM0000002")
	require.NoError(t, err)
	assert.Empty(t, votes)
}

func TestConcurrentIdenticalVotes(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	var ok, dup, other atomic.Int32

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := testutil.Vote("CAND0000001", "VOTER0001")
			err := s.InsertVote(ctx, &v)
			switch _, isDup := store.IsDuplicate(err); {
			case err == nil:
				ok.Add(1)
			case isDup:
				dup.Add(1)
			default:
				other.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), dup.Load())
	assert.Zero(t, other.Load())

	votes, err := s.ListVotes(ctx)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestFindUserIsCaseInsensitiveOnEmail(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	u := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", UserType: "voter", CreatedAt: testutil.Now}
	require.NoError(t, s.CreateUser(ctx, &u))

	found, err := s.FindUser(ctx, "Alice@Example.com", "voter")
	require.NoError(t, err)
	assert.Equal(t, u, *found)

	_, err = s.FindUser(ctx, "alice@example.com", "candidate")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestLatestImage(t *testing.T) {
	s := testutil.NewSQLiteStore(t)
	ctx := context.Background()

	_, err := s.LatestImage(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)

	first := models.Image{Filename: "a.png", ContentType: "image/png", Size: 3, DataURL: "data:image/png;base64,AAA", CreatedAt: testutil.Now}
	second := models.Image{Filename: "b.jpg", ContentType: "image/jpeg", Size: 4, DataURL: "data:image/jpeg;base64,BBBB", CreatedAt: testutil.Now.Add(time.Second)}
	require.NoError(t, s.SaveImage(ctx, &first))
	require.NoError(t, s.SaveImage(ctx, &second))

	latest, err := s.LatestImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, *latest)
}
