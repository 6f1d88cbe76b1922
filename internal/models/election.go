package models

import (
	"strings"
	"time"
)

// ElectionForm is one votable contest. Uid doubles as the formId/Form_Id
// foreign key on candidates and votes.
type ElectionForm struct {
	ID            string    `json:"_id" bson:"_id" mapstructure:"id"`
	Title         string    `json:"title" bson:"title" mapstructure:"title"`
	NumCandidates FlexInt   `json:"numCandidates" bson:"numCandidates" mapstructure:"num_candidates"`
	ExpiryDate    string    `json:"expiryDate" bson:"expiryDate" mapstructure:"expiry_date"`
	Uid           string    `json:"Uid" bson:"Uid" mapstructure:"uid"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt" mapstructure:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt" mapstructure:"updated_at"`
}

// ExpiresAt parses ExpiryDate. ok is false when the stored value is not a
// recognisable date.
func (e ElectionForm) ExpiresAt() (t time.Time, ok bool) {
	return ParseDate(e.ExpiryDate)
}

// Expired reports whether the election's expiry date has passed at now.
// Elections with an unparseable expiry never expire.
func (e ElectionForm) Expired(now time.Time) bool {
	t, ok := e.ExpiresAt()
	if !ok {
		return false
	}
	return !t.After(now)
}

type ElectionWithCandidates struct {
	Election   ElectionForm `json:"election"`
	Candidates []Candidate  `json:"candidates"`
	Expired    bool         `json:"expired"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts the date formats HTML date/datetime inputs and JSON
// encoders produce. Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (e *ElectionForm) Normalize() {
	e.Title = strings.TrimSpace(e.Title)
}
