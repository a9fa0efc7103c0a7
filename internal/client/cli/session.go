package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/evote/internal/client/client"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

// report prints err in user terms and returns it.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintf(a.out, "Not authorized (%v). Use 'token' to log in\n", err)
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(a.out, "Not found")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

func (a *App) Token(ctx context.Context) error {
	token, err := GetToken(a.out)
	if err != nil {
		return a.report(err)
	}
	if err := a.session.Login(ctx, token); err != nil {
		return a.report(err)
	}
	a.mu.Lock()
	a.loggedIn = true
	a.mu.Unlock()
	fmt.Fprintln(a.out, "Token saved")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return a.report(err)
	}
	a.mu.Lock()
	a.loggedIn = false
	a.mu.Unlock()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
