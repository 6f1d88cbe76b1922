// Package testutil holds fixtures and store setup shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/saxenaaman628/online-voting-system/internal/models"
	"github.com/saxenaaman628/online-voting-system/internal/sqlstore"
)

// Now is the fixed clock used across tests.
var Now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func Clock() time.Time { return Now }

// FutureDate is comfortably after Now.
const FutureDate = "2030-01-01"

// NewSQLiteStore opens a fresh in-memory sqlite store closed at test end.
func NewSQLiteStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	s, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func Election() models.ElectionForm {
	return models.ElectionForm{
		Title:         "City Council",
		NumCandidates: 2,
		ExpiryDate:    FutureDate,
		Uid:           "FORM0000001",
	}
}

func Candidate(uid, name, email, mobile string) models.Candidate {
	return models.Candidate{
		FullName:  name,
		BirthDate: "1980-01-01",
		Age:       45,
		Email:     email,
		Mobile:    mobile,
		Address:   "12 Market Road, Springfield",
		Uid:       uid,
		FormTitle: "City Council",
		FormID:    "FORM0000001",
	}
}

func Candidates() []models.Candidate {
	return []models.Candidate{
		Candidate("CAND0000001", "Jane Roe", "jane@example.com", "9123456780"),
		Candidate("CAND0000002", "Richard Miles", "richard@example.com", "9123456781"),
	}
}

func Voter() models.Voter {
	return models.Voter{
		FullName:    "John Doe",
		PhoneNumber: "9876543210",
		Email:       "john.doe@example.com",
		Address:     "221B Baker Street, London",
		Birthdate:   "1990-04-12",
		Age:         "35",
		UserID:      "VOTER0001",
	}
}

func Vote(candidateUID, voterID string) models.Vote {
	return models.Vote{
		CandidateUID: candidateUID,
		VoterID:      voterID,
		FormID:       "FORM0000001",
		FormTitle:    "City Council",
		Vote:         1,
		CreatedAt:    Now,
	}
}
