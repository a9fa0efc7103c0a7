// Package client contains client-side building blocks for the evote CLI.
//
// # Overview
//
// The package provides:
//  1. The Client interface, the CLI's contract with the election service.
//  2. GRPCClient, a gRPC implementation that attaches the saved access
//     token to every call and maps status codes to sentinel errors.
//  3. InitDatabase, which opens the local SQLite database, applies the
//     embedded goose migrations and returns the repositories built on it.
//
// # Error Handling
//
// Transport conditions are exposed as sentinel errors that callers can
// match with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. Other
// server errors carry the server's message unchanged.
package client
