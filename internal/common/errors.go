// Package common defines shared constants and sentinel errors used across
// the evote server, its public API and the CLI client. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Election and voting rule violations.
	ErrVotingClosed     = errors.New("voting is closed for this election")
	ErrAlreadyVoted     = errors.New("you have already voted in this election")
	ErrInvalidCandidate = errors.New("invalid candidate")
	ErrElectionLocked   = errors.New("election can only be changed while upcoming")
	ErrVoterNotEligible = errors.New("voter is not eligible")

	// Ballot cryptography.
	ErrCryptoSetup    = errors.New("election key setup failed")
	ErrDecryption     = errors.New("ballot decryption failed")
	ErrBallotTooLarge = errors.New("ballot exceeds encryption size limit")
	ErrKeyUnavailable = errors.New("election private key unavailable")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
