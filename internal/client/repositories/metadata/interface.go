// Package metadata stores small key/value settings of the CLI, such as the
// saved access token, in the local SQLite database.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAccessToken = "access_token"
)

// Repository is a string key/value store. Get reports ok=false for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
