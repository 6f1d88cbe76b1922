// Package mongostore is the MongoDB store backend. Uniqueness is declared
// as unique indexes, including the compound vote index.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

type index struct {
	collection string
	name       string
	field      string
	keys       bson.D
}

// Index names are the lookup key when a duplicate key error comes back.
var indexes = []index{
	{store.Users, "uq_email", store.FieldEmail, bson.D{{Key: "Email", Value: 1}}},
	{store.Voters, "uq_email", store.FieldEmail, bson.D{{Key: "email", Value: 1}}},
	{store.Voters, "uq_user_id", store.FieldUserID, bson.D{{Key: "user_id", Value: 1}}},
	{store.Elections, "uq_uid", store.FieldUid, bson.D{{Key: "Uid", Value: 1}}},
	{store.Candidates, "uq_email", store.FieldEmail, bson.D{{Key: "email", Value: 1}}},
	{store.Candidates, "uq_uid", store.FieldUid, bson.D{{Key: "Uid", Value: 1}}},
	{store.Votes, "uq_vote", store.FieldVoteTuple, bson.D{
		{Key: "candidateUid", Value: 1},
		{Key: "voterId", Value: 1},
		{Key: "formId", Value: 1},
	}},
}

// Open connects to uri, selects database and ensures the unique indexes.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	s := &Store{client: client, db: client.Database(database)}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	slog.Info("MongoDB connected", "database", database)
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	for _, ix := range indexes {
		_, err := s.db.Collection(ix.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    ix.keys,
			Options: options.Index().SetName(ix.name).SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create index %s.%s: %w", ix.collection, ix.name, err)
		}
	}
	return nil
}

// classify maps E11000 to a DuplicateKeyError using the index name in the
// server message.
func classify(err error, collection string) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	for _, ix := range indexes {
		if ix.collection == collection && strings.Contains(msg, "index: "+ix.name+" ") {
			return &store.DuplicateKeyError{Collection: collection, Field: ix.field}
		}
	}
	return &store.DuplicateKeyError{Collection: collection}
}

func (s *Store) insert(ctx context.Context, collection string, doc any) error {
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, classify(err, collection))
	}
	return nil
}

func find[T any](ctx context.Context, coll *mongo.Collection, filter bson.D) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.D, opts ...*options.FindOneOptions) (*T, error) {
	var rec T
	err := coll.FindOne(ctx, filter, opts...).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", coll.Name(), err)
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
	return s.insert(ctx, store.Users, u)
}

func (s *Store) FindUser(ctx context.Context, email, userType string) (*models.User, error) {
	return findOne[models.User](ctx, s.db.Collection(store.Users),
		bson.D{{Key: "Email", Value: strings.ToLower(email)}, {Key: "userType", Value: userType}})
}

func (s *Store) CreateVoter(ctx context.Context, v *models.Voter) error {
	ensureID(&v.ID)
	return s.insert(ctx, store.Voters, v)
}

func (s *Store) ListVoters(ctx context.Context) ([]models.Voter, error) {
	return find[models.Voter](ctx, s.db.Collection(store.Voters), bson.D{})
}

func (s *Store) FindVoter(ctx context.Context, userID string) (*models.Voter, error) {
	return findOne[models.Voter](ctx, s.db.Collection(store.Voters), bson.D{{Key: "user_id", Value: userID}})
}

func (s *Store) CreateElection(ctx context.Context, e *models.ElectionForm) error {
	ensureID(&e.ID)
	return s.insert(ctx, store.Elections, e)
}

func (s *Store) ListElections(ctx context.Context) ([]models.ElectionForm, error) {
	return find[models.ElectionForm](ctx, s.db.Collection(store.Elections), bson.D{})
}

func (s *Store) FindElection(ctx context.Context, uid string) (*models.ElectionForm, error) {
	return findOne[models.ElectionForm](ctx, s.db.Collection(store.Elections), bson.D{{Key: "Uid", Value: uid}})
}

func (s *Store) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	ensureID(&c.ID)
	return s.insert(ctx, store.Candidates, c)
}

func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return find[models.Candidate](ctx, s.db.Collection(store.Candidates), bson.D{})
}

func (s *Store) ListCandidatesByElection(ctx context.Context, formID string) ([]models.Candidate, error) {
	return find[models.Candidate](ctx, s.db.Collection(store.Candidates), bson.D{{Key: "Form_Id", Value: formID}})
}

func (s *Store) InsertVote(ctx context.Context, v *models.Vote) error {
	ensureID(&v.ID)
	return s.insert(ctx, store.Votes, v)
}

func (s *Store) ListVotes(ctx context.Context) ([]models.Vote, error) {
	return find[models.Vote](ctx, s.db.Collection(store.Votes), bson.D{})
}

func (s *Store) ListVotesByElection(ctx context.Context, formID string) ([]models.Vote, error) {
	return find[models.Vote](ctx, s.db.Collection(store.Votes), bson.D{{Key: "formId", Value: formID}})
}

func (s *Store) SaveImage(ctx context.Context, img *models.Image) error {
	ensureID(&img.ID)
	return s.insert(ctx, store.Images, img)
}

func (s *Store) LatestImage(ctx context.Context) (*models.Image, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return findOne[models.Image](ctx, s.db.Collection(store.Images), bson.D{}, opts)
}

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, nil) }

func (s *Store) Close() error { return s.client.Disconnect(context.Background()) }
