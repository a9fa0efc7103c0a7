package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/evote/internal/common"
)

func (a *App) Register(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return a.usage("register <email> <admin|voter> [verified]")
	}
	role := args[1]
	if role != common.RoleAdmin && role != common.RoleVoter {
		return a.usage("register <email> <admin|voter> [verified]")
	}
	verified := false
	if len(args) == 3 {
		v, err := strconv.ParseBool(args[2])
		if err != nil {
			return a.usage("register <email> <admin|voter> [true|false]")
		}
		verified = v
	}

	u, token, err := a.admin.Register(ctx, args[0], role, verified)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Registered %s (%s) as %s, verified=%t\n", u.Email, u.ID, u.Role, u.Verified)
	fmt.Fprintf(a.out, "Access token:\n%s\n", token)
	return nil
}

func (a *App) Create(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("create <election.json>")
	}
	e, err := a.admin.CreateFromFile(ctx, args[0])
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Created election %s\n", e.ID)
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return a.usage("update <election-id> <changes.json>")
	}
	e, err := a.admin.UpdateFromFile(ctx, args[0], args[1])
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Updated election %s\n", e.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("delete <election-id>")
	}
	if !confirm(a.reader, fmt.Sprintf("Delete election %s?", args[0]), a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.admin.Delete(ctx, args[0]); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func (a *App) Publish(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return a.usage("publish <election-id> [output.json]")
	}
	dest := ""
	if len(args) == 2 {
		dest = args[1]
	}

	resp, err := a.admin.Publish(ctx, args[0], dest)
	if resp != nil {
		fmt.Fprintf(a.out, "Published %d votes to %s\n", resp.TotalVotes, resp.StorageKey)
		fmt.Fprintf(a.out, "Download link (expires): %s\n", resp.URL)
	}
	if err != nil {
		return a.report(err)
	}
	if dest != "" {
		fmt.Fprintf(a.out, "Saved to %s\n", dest)
	}
	return nil
}
