package models

import "time"

// Publication records where an election's results snapshot was written in
// object storage.
type Publication struct {
	ElectionID string
	// StorageKey is the object key of the JSON snapshot.
	StorageKey  string
	TotalVotes  int64
	PublishedAt time.Time
}
