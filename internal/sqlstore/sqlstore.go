// Package sqlstore implements store.Store on database/sql. It runs on
// sqlite (modernc, pure Go) for local use and tests, and on postgres via
// lib/pq. Queries use $N placeholders, which both drivers accept.
// Uniqueness comes from table constraints.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/store"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z"

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open connects, verifies the connection and creates the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if driver == DriverSQLite {
		// one connection keeps a :memory: database alive and serialises writers
		db.SetMaxOpenConns(1)
	}
	s := &Store{db: db}
	if err := s.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := s.createSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) exec(ctx context.Context, collection, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, classify(err, collection))
	}
	return nil
}

func ts(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTS(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	ensureID(&u.ID)
	return s.exec(ctx, store.Users, `
		INSERT INTO users (id, username, email, password_hash, user_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.UserType, ts(u.CreatedAt))
}

func (s *Store) FindUser(ctx context.Context, email, userType string) (*models.User, error) {
	var u models.User
	var created string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, user_type, created_at
		FROM users WHERE email = $1 AND user_type = $2
	`, strings.ToLower(email), userType).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.UserType, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	u.CreatedAt = parseTS(created)
	return &u, nil
}

// Voters

const voterColumns = `id, full_name, phone_number, email, address, birthdate, age, user_id, image, created_at, updated_at`

func (s *Store) CreateVoter(ctx context.Context, v *models.Voter) error {
	ensureID(&v.ID)
	return s.exec(ctx, store.Voters, `
		INSERT INTO voters (`+voterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, v.ID, v.FullName, v.PhoneNumber, v.Email, v.Address, v.Birthdate, string(v.Age), v.UserID, v.Image,
		ts(v.CreatedAt), ts(v.UpdatedAt))
}

func scanVoter(sc interface{ Scan(...any) error }) (models.Voter, error) {
	var v models.Voter
	var age, created, updated string
	err := sc.Scan(&v.ID, &v.FullName, &v.PhoneNumber, &v.Email, &v.Address, &v.Birthdate, &age, &v.UserID,
		&v.Image, &created, &updated)
	v.Age = models.NumericString(age)
	v.CreatedAt, v.UpdatedAt = parseTS(created), parseTS(updated)
	return v, err
}

func (s *Store) ListVoters(ctx context.Context) ([]models.Voter, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+voterColumns+` FROM voters ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query voters: %w", err)
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		v, err := scanVoter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan voter: %w", err)
		}
		voters = append(voters, v)
	}
	return voters, rows.Err()
}

func (s *Store) FindVoter(ctx context.Context, userID string) (*models.Voter, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+voterColumns+` FROM voters WHERE user_id = $1`, userID)
	v, err := scanVoter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query voters: %w", err)
	}
	return &v, nil
}

// Elections

const electionColumns = `id, title, num_candidates, expiry_date, uid, created_at, updated_at`

func (s *Store) CreateElection(ctx context.Context, e *models.ElectionForm) error {
	ensureID(&e.ID)
	return s.exec(ctx, store.Elections, `
		INSERT INTO formdatas (`+electionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Title, int(e.NumCandidates), e.ExpiryDate, e.Uid, ts(e.CreatedAt), ts(e.UpdatedAt))
}

func scanElection(sc interface{ Scan(...any) error }) (models.ElectionForm, error) {
	var e models.ElectionForm
	var num int
	var created, updated string
	err := sc.Scan(&e.ID, &e.Title, &num, &e.ExpiryDate, &e.Uid, &created, &updated)
	e.NumCandidates = models.FlexInt(num)
	e.CreatedAt, e.UpdatedAt = parseTS(created), parseTS(updated)
	return e, err
}

func (s *Store) ListElections(ctx context.Context) ([]models.ElectionForm, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+electionColumns+` FROM formdatas ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query formdatas: %w", err)
	}
	defer rows.Close()

	elections := []models.ElectionForm{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan formdata: %w", err)
		}
		elections = append(elections, e)
	}
	return elections, rows.Err()
}

func (s *Store) FindElection(ctx context.Context, uid string) (*models.ElectionForm, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+electionColumns+` FROM formdatas WHERE uid = $1`, uid)
	e, err := scanElection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query formdatas: %w", err)
	}
	return &e, nil
}

// Candidates

const candidateColumns = `id, full_name, birth_date, age, email, mobile, address, image, voter_icon, uid, form_title, form_id, created_at, updated_at`

func (s *Store) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	ensureID(&c.ID)
	return s.exec(ctx, store.Candidates, `
		INSERT INTO candidatedatas (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, c.ID, c.FullName, c.BirthDate, int(c.Age), c.Email, c.Mobile, c.Address, c.Image, c.VoterIcon,
		c.Uid, c.FormTitle, c.FormID, ts(c.CreatedAt), ts(c.UpdatedAt))
}

func (s *Store) queryCandidates(ctx context.Context, query string, args ...any) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidatedatas: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var age int
		var created, updated string
		if err := rows.Scan(&c.ID, &c.FullName, &c.BirthDate, &age, &c.Email, &c.Mobile, &c.Address, &c.Image,
			&c.VoterIcon, &c.Uid, &c.FormTitle, &c.FormID, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.Age = models.FlexInt(age)
		c.CreatedAt, c.UpdatedAt = parseTS(created), parseTS(updated)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *Store) ListCandidates(ctx context.Context) ([]models.Candidate, error) {
	return s.queryCandidates(ctx, `SELECT `+candidateColumns+` FROM candidatedatas ORDER BY created_at, id`)
}

func (s *Store) ListCandidatesByElection(ctx context.Context, formID string) ([]models.Candidate, error) {
	return s.queryCandidates(ctx, `SELECT `+candidateColumns+` FROM candidatedatas WHERE form_id = $1 ORDER BY created_at, id`, formID)
}

// Votes

const voteColumns = `id, candidate_uid, voter_id, form_id, form_title, vote, created_at`

func (s *Store) InsertVote(ctx context.Context, v *models.Vote) error {
	ensureID(&v.ID)
	return s.exec(ctx, store.Votes, `
		INSERT INTO votingdatas (`+voteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, v.ID, v.CandidateUID, v.VoterID, v.FormID, v.FormTitle, v.Vote, ts(v.CreatedAt))
}

func (s *Store) queryVotes(ctx context.Context, query string, args ...any) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query votingdatas: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var created string
		if err := rows.Scan(&v.ID, &v.CandidateUID, &v.VoterID, &v.FormID, &v.FormTitle, &v.Vote, &created); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		v.CreatedAt = parseTS(created)
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func (s *Store) ListVotes(ctx context.Context) ([]models.Vote, error) {
	return s.queryVotes(ctx, `SELECT `+voteColumns+` FROM votingdatas ORDER BY created_at, id`)
}

func (s *Store) ListVotesByElection(ctx context.Context, formID string) ([]models.Vote, error) {
	return s.queryVotes(ctx, `SELECT `+voteColumns+` FROM votingdatas WHERE form_id = $1 ORDER BY created_at, id`, formID)
}

// Images

func (s *Store) SaveImage(ctx context.Context, img *models.Image) error {
	ensureID(&img.ID)
	return s.exec(ctx, store.Images, `
		INSERT INTO images (id, filename, content_type, size, data_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, img.ID, img.Filename, img.ContentType, img.Size, img.DataURL, ts(img.CreatedAt))
}

func (s *Store) LatestImage(ctx context.Context) (*models.Image, error) {
	var img models.Image
	var created string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filename, content_type, size, data_url, created_at
		FROM images ORDER BY created_at DESC, id DESC LIMIT 1
	`).Scan(&img.ID, &img.Filename, &img.ContentType, &img.Size, &img.DataURL, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	img.CreatedAt = parseTS(created)
	return &img, nil
}
