package registrar_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/registrar"
	"github.com/saxenaaman628/online-voting-system/internal/sqlstore"
	"github.com/saxenaaman628/online-voting-system/internal/testutil"
	"github.com/saxenaaman628/online-voting-system/internal/validation"
)

func payload(candidateUID string) models.VotePayload {
	return models.VotePayload{
		CandidateUID: candidateUID,
		VoterID:      "VOTER0001",
		FormID:       "FORM0000001",
		FormTitle:    "City Council",
	}
}

func setup(t *testing.T, opts ...registrar.Option) (*registrar.Registrar, *sqlstore.Store) {
	t.Helper()
	s := testutil.NewSQLiteStore(t)
	return registrar.New(s, validation.New(testutil.Clock), testutil.Clock, opts...), s
}

func TestCastRecordsOneVote(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	v, err := r.Cast(ctx, payload("CAND0000001"))
	require.NoError(t, err)
	assert.Equal(t, 1, v.Vote)
	assert.Equal(t, testutil.Now, v.CreatedAt)

	_, err = r.Cast(ctx, payload("CAND0000001"))
	assert.ErrorIs(t, err, registrar.ErrDuplicateVote)

	votes, err := s.ListVotes(ctx)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestCastSameVoterOtherCandidate(t *testing.T) {
	r, _ := setup(t)
	ctx := context.Background()

	_, err := r.Cast(ctx, payload("CAND0000001"))
	require.NoError(t, err)
	_, err = r.Cast(ctx, payload("CAND0000002"))
	assert.NoError(t, err)
}

func TestCastValidatesPayload(t *testing.T) {
	r, _ := setup(t)

	_, err := r.Cast(context.Background(), models.VotePayload{CandidateUID: "bad", VoterID: "", FormID: "", FormTitle: ""})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 4)
}

func TestCastExpiredElection(t *testing.T) {
	ctx := context.Background()

	closed := testutil.Election()
	closed.ExpiryDate = "2025-06-01"

	t.Run("enforced", func(t *testing.T) {
		r, s := setup(t)
		require.NoError(t, s.CreateElection(ctx, &closed))
		_, err := r.Cast(ctx, payload("CAND0000001"))
		assert.ErrorIs(t, err, registrar.ErrElectionClosed)
	})

	t.Run("disabled", func(t *testing.T) {
		r, s := setup(t, registrar.WithExpiry(false))
		e := closed
		require.NoError(t, s.CreateElection(ctx, &e))
		_, err := r.Cast(ctx, payload("CAND0000001"))
		assert.NoError(t, err)
	})

	t.Run("open election", func(t *testing.T) {
		r, s := setup(t)
		open := testutil.Election()
		require.NoError(t, s.CreateElection(ctx, &open))
		_, err := r.Cast(ctx, payload("CAND0000001"))
		assert.NoError(t, err)
	})
}

func TestCastConcurrentDuplicates(t *testing.T) {
	r, s := setup(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	var ok, dup atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Cast(ctx, payload("CAND0000001"))
			switch {
			case err == nil:
				ok.Add(1)
			case err == registrar.ErrDuplicateVote:
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), dup.Load())

	votes, err := s.ListVotes(ctx)
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}
