package models

import "time"

// User is the identity record the server needs for authorization: who the
// principal is, its role and whether it may vote.
type User struct {
	ID        string
	Email     string
	Role      string
	Active    bool
	Verified  bool
	CreatedAt time.Time
}

// Eligible reports whether the user may cast votes.
func (u *User) Eligible() bool {
	return u.Active && u.Verified
}
