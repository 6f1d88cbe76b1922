// Package redishandler is the redis store backend. Each record is a hash;
// unique fields are claimed through per-field index hashes inside one Lua
// script so the existence check and the write are atomic on the server.
package redishandler

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
)

// KEYS: record, ids list, N unique index hashes, M extra lists.
// ARGV: id, N, M, N unique values, then field/value pairs.
// Returns 0 on success or the 1-based position of the violated index.
var insertScript = redis.NewScript(`
local n = tonumber(ARGV[2])
local m = tonumber(ARGV[3])
for i = 1, n do
  if redis.call('HEXISTS', KEYS[2 + i], ARGV[3 + i]) == 1 then
    return i
  end
end
for i = 1, n do
  redis.call('HSET', KEYS[2 + i], ARGV[3 + i], ARGV[1])
end
local fields = {}
for i = 4 + n, #ARGV do
  fields[#fields + 1] = ARGV[i]
end
redis.call('HSET', KEYS[1], unpack(fields))
redis.call('RPUSH', KEYS[2], ARGV[1])
for i = 1, m do
  redis.call('RPUSH', KEYS[2 + n + i], ARGV[1])
end
return 0
`)

type Store struct {
	rdb *redis.Client
}

var _ store.Store = (*Store)(nil)

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

type unique struct {
	field string
	value string
}

func (s *Store) insert(ctx context.Context, collection, id string, fields map[string]any, uniques []unique, lists ...string) error {
	keys := []string{recordKey(collection, id), idsKey(collection)}
	args := []any{id, len(uniques), len(lists)}
	for _, u := range uniques {
		keys = append(keys, uniqueKey(collection, u.field))
		args = append(args, u.value)
	}
	keys = append(keys, lists...)
	for k, v := range fields {
		args = append(args, k, v)
	}

	pos, err := insertScript.Run(ctx, s.rdb, keys, args...).Int()
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	if pos > 0 {
		return fmt.Errorf("insert into %s: %w", collection,
			&store.DuplicateKeyError{Collection: collection, Field: uniques[pos-1].field})
	}
	return nil
}

// loadAll reads the hashes for ids in one pipeline. Hashes that vanished
// or fail to decode are skipped.
func loadAll[T any](ctx context.Context, rdb *redis.Client, collection string, ids []string) ([]T, error) {
	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	pipe := rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, recordKey(collection, id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	for _, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			continue
		}
		var rec T
		if err := decode(data, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func list[T any](ctx context.Context, rdb *redis.Client, collection, listKey string) ([]T, error) {
	ids, err := rdb.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return loadAll[T](ctx, rdb, collection, ids)
}

// findBy resolves a unique index entry to its record.
func findBy[T any](ctx context.Context, rdb *redis.Client, collection, field, value string) (*T, error) {
	id, err := rdb.HGet(ctx, uniqueKey(collection, field), value).Result()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	data, err := rdb.HGetAll(ctx, recordKey(collection, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	if len(data) == 0 {
		return nil, store.ErrNotFound
	}
	var rec T
	if err := decode(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return &rec, nil
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	ensureID(&u.ID)
	return s.insert(ctx, store.Users, u.ID, userFields(u),
		[]unique{{store.FieldEmail, u.Email}})
}

func (s *Store) FindUser(ctx context.Context, email, userType string) (*models.User, error) {
	u, err := findBy[models.User](ctx, s.rdb, store.Users, store.FieldEmail, email)
	if err != nil {
		return nil, err
	}
	if u.UserType != userType {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) CreateVoter(ctx context.Context, v *models.Voter) error {
	ensureID(&v.ID)
	return s.insert(ctx, store.Voters, v.ID, voterFields(v),
		[]unique{{store.FieldEmail, v.Email}, {store.FieldUserID, v.UserID}})
}

func (s *Store) ListVoters(ctx context.Context) ([]models.Voter, error) {
	return list[models.Voter](ctx, s.rdb, store.Voters, idsKey(store.Voters))
}

func (s *Store) FindVoter(ctx context.Context, userID string) (*models.Voter, error) {
	return findBy[models.Voter](ctx, s.rdb, store.Voters, store.FieldUserID, userID)
}

func (s *Store) CreateElection(ctx context.Context, e *models.ElectionForm) error {
	ensureID(&e.ID)
	return s.insert(ctx, store.Elections, e.ID, electionFields(e),
		[]unique{{store.FieldUid, e.Uid}})
}

func (s *Store) ListElections(ctx context.Context) ([]models.ElectionForm, error) {
	return list[models.ElectionForm](ctx, s.rdb, store.Elections, idsKey(store.Elections))
}

func (s *Store) FindElection(ctx context.Context, uid string) (*models.ElectionForm, error) {
	return findBy[models.ElectionForm](ctx, s.rdb, store.Elections, store.FieldUid, uid)
}

func (s *Store) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	ensureID(&c.ID)
	return s.insert(ctx, store.Candidates, c.ID, candidateFields(c),
		[]unique{{store.FieldEmail, c.Email}, {store.FieldUid, c.Uid}},
		formKey(store.Candidates, c.FormID))
}

func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return list[models.Candidate](ctx, s.rdb, store.Candidates, idsKey(store.Candidates))
}

func (s *Store) ListCandidatesByElection(ctx context.Context, formID string) ([]models.Candidate, error) {
	return list[models.Candidate](ctx, s.rdb, store.Candidates, formKey(store.Candidates, formID))
}

func (s *Store) InsertVote(ctx context.Context, v *models.Vote) error {
	ensureID(&v.ID)
	return s.insert(ctx, store.Votes, v.ID, voteFields(v),
		[]unique{{store.FieldVoteTuple, voteTuple(v.CandidateUID, v.VoterID, v.FormID)}},
		formKey(store.Votes, v.FormID))
}

func (s *Store) ListVotes(ctx context.Context) ([]models.Vote, error) {
	return list[models.Vote](ctx, s.rdb, store.Votes, idsKey(store.Votes))
}

func (s *Store) ListVotesByElection(ctx context.Context, formID string) ([]models.Vote, error) {
	return list[models.Vote](ctx, s.rdb, store.Votes, formKey(store.Votes, formID))
}

func (s *Store) SaveImage(ctx context.Context, img *models.Image) error {
	ensureID(&img.ID)
	return s.insert(ctx, store.Images, img.ID, imageFields(img), nil)
}

func (s *Store) LatestImage(ctx context.Context) (*models.Image, error) {
	ids, err := s.rdb.LRange(ctx, idsKey(store.Images), -1, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", store.Images, err)
	}
	if len(ids) == 0 {
		return nil, store.ErrNotFound
	}
	imgs, err := loadAll[models.Image](ctx, s.rdb, store.Images, ids)
	if err != nil {
		return nil, err
	}
	if len(imgs) == 0 {
		return nil, store.ErrNotFound
	}
	return &imgs[0], nil
}

func (s *Store) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

func (s *Store) Close() error { return s.rdb.Close() }
