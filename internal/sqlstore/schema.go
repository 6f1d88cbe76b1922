package sqlstore

import (
	"context"
	"fmt"
)

// createSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *Store) createSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Timestamps are stored as fixed-width UTC text so they sort lexically on
// both sqlite and postgres.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    user_type TEXT NOT NULL,
    created_at TEXT NOT NULL,
    CONSTRAINT uq_users_email UNIQUE (email)
)`,
	`CREATE TABLE IF NOT EXISTS voters (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    phone_number TEXT NOT NULL,
    email TEXT NOT NULL,
    address TEXT NOT NULL,
    birthdate TEXT NOT NULL,
    age TEXT NOT NULL,
    user_id TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    CONSTRAINT uq_voters_email UNIQUE (email),
    CONSTRAINT uq_voters_user_id UNIQUE (user_id)
)`,
	`CREATE TABLE IF NOT EXISTS formdatas (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    num_candidates INTEGER NOT NULL,
    expiry_date TEXT NOT NULL,
    uid TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    CONSTRAINT uq_formdatas_uid UNIQUE (uid)
)`,
	`CREATE TABLE IF NOT EXISTS candidatedatas (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    birth_date TEXT NOT NULL,
    age INTEGER NOT NULL,
    email TEXT NOT NULL,
    mobile TEXT NOT NULL,
    address TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    voter_icon TEXT NOT NULL DEFAULT '',
    uid TEXT NOT NULL,
    form_title TEXT NOT NULL,
    form_id TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    CONSTRAINT uq_candidatedatas_email UNIQUE (email),
    CONSTRAINT uq_candidatedatas_uid UNIQUE (uid)
)`,
	`CREATE INDEX IF NOT EXISTS idx_candidatedatas_form_id ON candidatedatas(form_id)`,
	`CREATE TABLE IF NOT EXISTS votingdatas (
    id TEXT PRIMARY KEY,
    candidate_uid TEXT NOT NULL,
    voter_id TEXT NOT NULL,
    form_id TEXT NOT NULL,
    form_title TEXT NOT NULL,
    vote INTEGER NOT NULL DEFAULT 1 CHECK (vote = 1),
    created_at TEXT NOT NULL,
    CONSTRAINT uq_votingdatas_triple UNIQUE (candidate_uid, voter_id, form_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_votingdatas_form_id ON votingdatas(form_id)`,
	`CREATE TABLE IF NOT EXISTS images (
    id TEXT PRIMARY KEY,
    filename TEXT NOT NULL,
    content_type TEXT NOT NULL,
    size INTEGER NOT NULL,
    data_url TEXT NOT NULL,
    created_at TEXT NOT NULL
)`,
}
