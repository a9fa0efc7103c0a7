package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
	Verified bool   `json:"verified"`
}

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// RegisterUserResponse carries the new user and an access token for it, so
// an admin can hand the token to the voter.
type RegisterUserResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
}

type Campaign struct {
	Experience   string            `json:"experience,omitempty"`
	Education    string            `json:"education,omitempty"`
	Achievements []string          `json:"achievements,omitempty"`
	Promises     []string          `json:"promises,omitempty"`
	Social       map[string]string `json:"social,omitempty"`
}

// Candidate is identified by its election-unique key.
type Candidate struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId,omitempty"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	Symbol   string   `json:"symbol,omitempty"`
	Agenda   string   `json:"agenda"`
	Campaign Campaign `json:"campaign"`
	Photo    string   `json:"photo,omitempty"`
	Votes    int64    `json:"votes"`
}

// Position is identified by its election-unique key.
type Position struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Candidates  []*Candidate `json:"candidates"`
}

type Election struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartAt     time.Time   `json:"startDate"`
	EndAt       time.Time   `json:"endDate"`
	Status      string      `json:"status"`
	TotalVotes  int64       `json:"totalVotes"`
	CreatorID   string      `json:"createdBy"`
	PublicKey   string      `json:"publicKey"`
	Positions   []*Position `json:"positions"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// CreateElectionRequest describes a new election. The creator is the
// calling admin.
type CreateElectionRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartAt     time.Time   `json:"startDate"`
	EndAt       time.Time   `json:"endDate"`
	Positions   []*Position `json:"positions"`
}

type ElectionResponse struct {
	Election *Election `json:"election"`
}

type GetElectionRequest struct {
	ID string `json:"id"`
}

type ListElectionsRequest struct{}

type ListElectionsResponse struct {
	Elections []*Election `json:"elections"`
}

type UpdateElectionRequest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"startDate"`
	EndAt       time.Time `json:"endDate"`
}

type DeleteElectionRequest struct {
	ID string `json:"id"`
}

type DeleteElectionResponse struct{}

// CastVoteRequest is the caller's choice. PositionID may be empty for
// single-position elections or when the candidate names the position.
type CastVoteRequest struct {
	ElectionID  string `json:"electionId"`
	PositionID  string `json:"positionId,omitempty"`
	CandidateID string `json:"candidateId"`
}

type CastVoteResponse struct {
	VerificationCode string `json:"verificationCode"`
}

type GetResultsRequest struct {
	ElectionID string `json:"electionId"`
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

type PositionResult struct {
	PositionID  string             `json:"positionId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	TotalVotes  int64              `json:"totalVotes"`
	Candidates  []*CandidateResult `json:"candidates"`
	Winner      *CandidateResult   `json:"winner"`
}

type Results struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
	Status        string            `json:"status"`
	TotalVotes    int64             `json:"totalVotes"`
	VerifiedVotes []string          `json:"verifiedVotes"`
	Positions     []*PositionResult `json:"positions"`
}

type GetResultsResponse struct {
	Results *Results `json:"results"`
}

type VerifyVoteRequest struct {
	Code string `json:"code"`
}

type VerifyVoteResponse struct {
	Verified   bool      `json:"verified"`
	ElectionID string    `json:"electionId"`
	Timestamp  time.Time `json:"timestamp"`
}

type PublishResultsRequest struct {
	ElectionID string `json:"electionId"`
}

// PublishResultsResponse points at the stored results snapshot. URL is a
// presigned link that expires.
type PublishResultsResponse struct {
	StorageKey  string    `json:"storageKey"`
	URL         string    `json:"url"`
	TotalVotes  int64     `json:"totalVotes"`
	PublishedAt time.Time `json:"publishedAt"`
}
