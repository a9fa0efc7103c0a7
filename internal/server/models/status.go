package models

import "time"

// ResolveStatus derives the lifecycle status from the voting window:
// before Start it is upcoming, from Start (inclusive) to End (exclusive)
// active, and from End on completed.
func ResolveStatus(w Window, now time.Time) Status {
	switch {
	case now.Before(w.Start):
		return StatusUpcoming
	case now.Before(w.End):
		return StatusActive
	default:
		return StatusCompleted
	}
}
