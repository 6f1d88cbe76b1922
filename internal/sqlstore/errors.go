package sqlstore

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/saxenaaman628/online-voting-system/internal/store"
)

// postgres reports the constraint name
var constraintFields = map[string]string{
	"uq_users_email":          store.FieldEmail,
	"uq_voters_email":         store.FieldEmail,
	"uq_voters_user_id":       store.FieldUserID,
	"uq_formdatas_uid":        store.FieldUid,
	"uq_candidatedatas_email": store.FieldEmail,
	"uq_candidatedatas_uid":   store.FieldUid,
	"uq_votingdatas_triple":   store.FieldVoteTuple,
}

// sqlite reports the column list
var columnFields = map[string]string{
	"users.email":          store.FieldEmail,
	"voters.email":         store.FieldEmail,
	"voters.user_id":       store.FieldUserID,
	"formdatas.uid":        store.FieldUid,
	"candidatedatas.email": store.FieldEmail,
	"candidatedatas.uid":   store.FieldUid,
	"votingdatas.candidate_uid, votingdatas.voter_id, votingdatas.form_id": store.FieldVoteTuple,
}

const pqUniqueViolation = "23505"

// classify turns a driver uniqueness violation into a DuplicateKeyError and
// passes every other error through.
func classify(err error, collection string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return &store.DuplicateKeyError{Collection: collection, Field: constraintFields[pqErr.Constraint]}
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) && isSQLiteUnique(sqErr) {
		return &store.DuplicateKeyError{Collection: collection, Field: sqliteField(sqErr.Error())}
	}

	return err
}

// isSQLiteUnique accepts the extended code and, for connections without
// extended codes, the primary constraint code with the unique message.
func isSQLiteUnique(err *sqlite.Error) bool {
	switch err.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "UNIQUE constraint failed")
	}
	return false
}

func sqliteField(msg string) string {
	const marker = "UNIQUE constraint failed: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	cols := msg[i+len(marker):]
	if j := strings.Index(cols, " ("); j >= 0 {
		cols = cols[:j]
	}
	return columnFields[strings.TrimSpace(cols)]
}
