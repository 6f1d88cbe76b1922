// Package results computes election outcomes from recorded votes. Every
// call is a pure function of the votes and candidates passed in.
package results

import (
	"sort"

	"github.com/saxenaaman628/online-voting-system/internal/models"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// CandidateName resolves uid against candidates. Unknown uids get a
// placeholder so results still render when references dangle.
func CandidateName(uid string, candidates []models.Candidate) string {
	if c, ok := index(candidates)[uid]; ok {
		return c.FullName
	}
	return placeholder(uid)
}

func placeholder(uid string) string { return "Candidate (" + uid + ")" }

func index(candidates []models.Candidate) map[string]models.Candidate {
	byUID := make(map[string]models.Candidate, len(candidates))
	for _, c := range candidates {
		if _, seen := byUID[c.Uid]; !seen {
			byUID[c.Uid] = c
		}
	}
	return byUID
}

// Aggregate totals the votes cast in formID. Votes for other elections are
// ignored. VoteCount only holds candidates with at least one vote; Tally
// lists every known candidate, highest first. A tie for first place goes
// to the lowest candidate uid.
func Aggregate(formID string, votes []models.Vote, candidates []models.Candidate) models.ElectionResult {
	res := models.ElectionResult{
		FormID:    formID,
		VoteCount: map[string]int{},
		Tally:     []models.TallyRow{},
	}

	for _, v := range votes {
		if v.FormID != formID {
			continue
		}
		if res.FormTitle == "" {
			res.FormTitle = v.FormTitle
		}
		res.VoteCount[v.CandidateUID] += v.Vote
		res.TotalVotes += v.Vote
	}

	byUID := index(candidates)
	counts := make(map[string]int, len(res.VoteCount))
	for uid, n := range res.VoteCount {
		counts[uid] = n
	}
	for uid, c := range byUID {
		if c.FormID != formID {
			continue
		}
		if _, ok := counts[uid]; !ok {
			counts[uid] = 0
		}
		if res.FormTitle == "" {
			res.FormTitle = c.FormTitle
		}
	}

	for uid, n := range counts {
		name := placeholder(uid)
		if c, ok := byUID[uid]; ok {
			name = c.FullName
		}
		res.Tally = append(res.Tally, models.TallyRow{CandidateUID: uid, CandidateName: name, Votes: n})
	}
	sort.Slice(res.Tally, func(i, j int) bool {
		a, b := res.Tally[i], res.Tally[j]
		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}
		return a.CandidateUID < b.CandidateUID
	})

	if len(res.VoteCount) > 0 {
		top := res.Tally[0]
		res.Winner = &models.Winner{
			CandidateUID:   top.CandidateUID,
			CandidateName:  top.CandidateName,
			CandidateImage: byUID[top.CandidateUID].Image,
			TotalVotes:     top.Votes,
			FormTitle:      res.FormTitle,
		}
	}
	return res
}

// Details lists the votes cast for candidateUID in formID, oldest first.
func Details(formID, candidateUID string, votes []models.Vote, candidates []models.Candidate) models.CandidateVotes {
	out := models.CandidateVotes{
		CandidateUID:  candidateUID,
		CandidateName: CandidateName(candidateUID, candidates),
		Votes:         []models.VoteDetail{},
	}

	var picked []models.Vote
	for _, v := range votes {
		if v.FormID == formID && v.CandidateUID == candidateUID {
			picked = append(picked, v)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].CreatedAt.Before(picked[j].CreatedAt) })

	for _, v := range picked {
		out.TotalVotes += v.Vote
		out.Votes = append(out.Votes, models.VoteDetail{
			VoterID:   v.VoterID,
			FormTitle: v.FormTitle,
			Vote:      v.Vote,
			CreatedAt: v.CreatedAt.UTC().Format(timeLayout),
		})
	}
	return out
}
