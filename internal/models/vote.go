package models

import "time"

// Vote is one cast ballot entry. (CandidateUID, VoterID, FormID) is unique.
type Vote struct {
	ID           string    `json:"_id" bson:"_id" mapstructure:"id"`
	CandidateUID string    `json:"candidateUid" bson:"candidateUid" mapstructure:"candidate_uid"`
	VoterID      string    `json:"voterId" bson:"voterId" mapstructure:"voter_id"`
	FormID       string    `json:"formId" bson:"formId" mapstructure:"form_id"`
	FormTitle    string    `json:"formTitle" bson:"formTitle" mapstructure:"form_title"`
	Vote         int       `json:"vote" bson:"vote" mapstructure:"vote"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" mapstructure:"created_at"`
}

// VotePayload is the expected vote request
type VotePayload struct {
	CandidateUID string `json:"candidateUid"`
	VoterID      string `json:"voterId"`
	FormID       string `json:"formId"`
	FormTitle    string `json:"formTitle"`
}
