package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Token(ctx context.Context) error
	Logout(ctx context.Context) error

	Elections(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Cast(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Results(ctx context.Context, args []string) error
	Receipts(ctx context.Context) error

	Register(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Publish(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: token, elections, show <id>, results <id>, verify <code>, receipts, exit"
	helpLoggedIn  = "Available commands: elections, show <id>, cast <election> <candidate> [position], " +
		"verify <code>, results <id>, receipts, register <email> <role> [verified], create <file>, " +
		"update <id> <file>, delete <id>, publish <id> [file], logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("evote %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "token", "login":
			_ = a.Token(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "l", "elections":
			_ = a.Elections(ctx)
		case "show":
			_ = a.Show(ctx, args)
		case "cast", "vote":
			_ = a.Cast(ctx, args)
		case "verify":
			_ = a.Verify(ctx, args)
		case "results":
			_ = a.Results(ctx, args)
		case "receipts":
			_ = a.Receipts(ctx)

		case "register":
			_ = a.Register(ctx, args)
		case "create":
			_ = a.Create(ctx, args)
		case "update":
			_ = a.Update(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "publish":
			_ = a.Publish(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
