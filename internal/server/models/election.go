// Package models defines server-side data models persisted in the database.
package models

import "time"

// Status is the lifecycle state of an election.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Window is the voting period [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Election is an election with its ballot key pair. Status is a cached
// value; see ResolveStatus.
type Election struct {
	ID          string
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	Status      Status
	Positions   []*Position
	TotalVotes  int64
	CreatorID   string
	PublicKey   string
	// PrivateKey is PEM, possibly sealed (see cryptox.KeySealer).
	PrivateKey string
	CreatedAt  time.Time
}

// Window returns the election's voting period.
func (e *Election) Window() Window {
	return Window{Start: e.StartAt, End: e.EndAt}
}

// Position returns the position with the given key.
func (e *Election) Position(key string) (*Position, bool) {
	for _, p := range e.Positions {
		if p.PositionKey == key {
			return p, true
		}
	}
	return nil, false
}

// FindCandidate looks a candidate up by its election-unique key and returns
// it together with its position.
func (e *Election) FindCandidate(candidateKey string) (*Position, *Candidate, bool) {
	for _, p := range e.Positions {
		if c, ok := p.Candidate(candidateKey); ok {
			return p, c, true
		}
	}
	return nil, nil, false
}

// Public returns a shallow copy without private key material.
func (e *Election) Public() *Election {
	cp := *e
	cp.PrivateKey = ""
	return &cp
}

// Position is one contested office within an election.
type Position struct {
	ID          string
	PositionKey string
	Title       string
	Description string
	Candidates  []*Candidate
}

// Candidate returns the candidate with the given key.
func (p *Position) Candidate(key string) (*Candidate, bool) {
	for _, c := range p.Candidates {
		if c.CandidateKey == key {
			return c, true
		}
	}
	return nil, false
}

// Candidate stands for a Position. Votes is a cast-time counter, an
// approximate badge only; tallies recount from the ballots.
type Candidate struct {
	ID           string
	CandidateKey string
	UserID       string
	Name         string
	Bio          string
	Symbol       string
	Agenda       string
	Campaign     Campaign
	Photo        string
	Votes        int64
}

// Campaign is free-form campaign material.
type Campaign struct {
	Experience   string            `json:"experience,omitempty"`
	Education    string            `json:"education,omitempty"`
	Achievements []string          `json:"achievements,omitempty"`
	Promises     []string          `json:"promises,omitempty"`
	Social       map[string]string `json:"social,omitempty"`
}
