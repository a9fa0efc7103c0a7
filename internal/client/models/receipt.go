// Package models defines client-side data models used by the evote CLI.
package models

import "time"

// Receipt is a verification code the voter received for a cast ballot,
// kept locally so the vote can be checked later. It never records the
// chosen candidate.
type Receipt struct {
	Code          string
	ElectionID    string
	ElectionTitle string
	PositionID    string
	CastAt        time.Time
	// VerifiedAt is the last time the server confirmed the code, if ever.
	VerifiedAt *time.Time
}
