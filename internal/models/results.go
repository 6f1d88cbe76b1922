package models

// Winner of one election. FormTitle is copied from the first vote seen.
type Winner struct {
	CandidateUID   string `json:"candidateUid"`
	CandidateName  string `json:"candidateName"`
	CandidateImage string `json:"candidateImage,omitempty"`
	TotalVotes     int    `json:"totalVotes"`
	FormTitle      string `json:"formTitle"`
}

type TallyRow struct {
	CandidateUID  string `json:"candidateUid"`
	CandidateName string `json:"candidateName"`
	Votes         int    `json:"votes"`
}

type VoteDetail struct {
	VoterID   string `json:"voterId"`
	FormTitle string `json:"formTitle"`
	Vote      int    `json:"vote"`
	CreatedAt string `json:"createdAt"`
}

type ElectionResult struct {
	FormID     string         `json:"formId"`
	FormTitle  string         `json:"formTitle"`
	TotalVotes int            `json:"totalVotes"`
	VoteCount  map[string]int `json:"voteCount"`
	Winner     *Winner        `json:"winner"`
	Tally      []TallyRow     `json:"tally"`
}

type CandidateVotes struct {
	CandidateUID  string       `json:"candidateUid"`
	CandidateName string       `json:"candidateName"`
	TotalVotes    int          `json:"totalVotes"`
	Votes         []VoteDetail `json:"votes"`
}
