// Package cli provides the interactive evote command-line client.
//
// It wires configuration, the local receipts database, the API services and
// a REPL. Typical flow: restore the saved access token, start a background
// connectivity watcher, and execute user commands.
//
// Key features:
//   - Token login / logout, the token is kept in the local database
//   - Browse elections, cast votes and keep verification receipts
//   - Verify receipts and view results
//   - Administration: register users, create/update/delete elections,
//     publish results and download the snapshot
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
