package models

import "time"

// Results is a computed tally of an election.
type Results struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
	Status        Status            `json:"status"`
	TotalVotes    int64             `json:"totalVotes"`
	VerifiedVotes []string          `json:"verifiedVotes"`
	Positions     []*PositionResult `json:"positions"`
}

// PositionResult is the tally of one position. Candidates are ordered by
// votes, descending; Winner is the first of them or nil.
type PositionResult struct {
	PositionID  string             `json:"positionId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	TotalVotes  int64              `json:"totalVotes"`
	Candidates  []*CandidateResult `json:"candidates"`
	Winner      *CandidateResult   `json:"winner"`
}

type CandidateResult struct {
	ID          string  `json:"id"`
	CandidateID string  `json:"candidateId"`
	Name        string  `json:"name"`
	Votes       int64   `json:"votes"`
	Percentage  float64 `json:"percentage"`
	Photo       string  `json:"photo"`
	Symbol      string  `json:"symbol"`
}
