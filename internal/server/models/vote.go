package models

import "time"

// Vote is a cast, encrypted ballot. Votes are write-once.
type Vote struct {
	ID               string
	ElectionID       string
	VoterID          string
	PositionID       string
	EncryptedBallot  string
	VerificationCode string
	CastAt           time.Time
	IP               string
	UserAgent        string
}

// ClientMeta is audit metadata about the casting client.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// Verification is the public answer for a receipt code. It deliberately
// carries no ballot content.
type Verification struct {
	Verified   bool      `json:"verified"`
	ElectionID string    `json:"electionId"`
	Timestamp  time.Time `json:"timestamp"`
}
