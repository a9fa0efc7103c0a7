package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/evote/internal/api"
)

const timeLayout = "2006-01-02 15:04 MST"

func (a *App) Elections(ctx context.Context) error {
	list, err := a.voter.Elections(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No elections")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tSTART\tEND\tVOTES")
	for _, e := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			e.ID, e.Title, e.Status, e.StartAt.Format(timeLayout), e.EndAt.Format(timeLayout), e.TotalVotes)
	}
	return w.Flush()
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("show <election-id>")
	}
	e, err := a.voter.Election(ctx, args[0])
	if err != nil {
		return a.report(err)
	}
	printElection(a, e)
	return nil
}

func printElection(a *App, e *api.Election) {
	fmt.Fprintf(a.out, "%s [%s]\n", e.Title, e.Status)
	if e.Description != "" {
		fmt.Fprintln(a.out, e.Description)
	}
	fmt.Fprintf(a.out, "Voting: %s - %s\n", e.StartAt.Format(timeLayout), e.EndAt.Format(timeLayout))

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, p := range e.Positions {
		fmt.Fprintf(w, "\n%s (%s)\n", p.Title, p.ID)
		for _, c := range p.Candidates {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", c.ID, c.Name, c.Symbol)
		}
	}
	_ = w.Flush()
}

func (a *App) Cast(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return a.usage("cast <election-id> <candidate-id> [position-id]")
	}
	position := ""
	if len(args) == 3 {
		position = args[2]
	}

	rc, err := a.voter.Cast(ctx, args[0], position, args[1])
	if rc != nil {
		fmt.Fprintf(a.out, "Vote recorded. Verification code: %s\n", rc.Code)
	}
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Keep this code to verify your vote later")
	return nil
}

func (a *App) Verify(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("verify <code>")
	}
	v, err := a.voter.Verify(ctx, args[0])
	if v != nil && v.Verified {
		fmt.Fprintf(a.out, "Verified: vote in election %s recorded at %s\n", v.ElectionID, v.Timestamp.Format(timeLayout))
	}
	if err != nil {
		return a.report(err)
	}
	return nil
}

func (a *App) Results(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("results <election-id>")
	}
	r, err := a.voter.Results(ctx, args[0])
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "%s [%s], %d votes\n", r.Title, r.Status, r.TotalVotes)
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, p := range r.Positions {
		fmt.Fprintf(w, "\n%s\t%d votes\n", p.Title, p.TotalVotes)
		for _, c := range p.Candidates {
			mark := ""
			if p.Winner != nil && p.Winner.CandidateID == c.CandidateID {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s%s\t%s\t%d\t%.2f%%\n", mark, c.CandidateID, c.Name, c.Votes, c.Percentage)
		}
	}
	return w.Flush()
}

func (a *App) Receipts(ctx context.Context) error {
	list, err := a.voter.Receipts(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No receipts")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tELECTION\tCAST\tVERIFIED")
	for _, rc := range list {
		verified := "-"
		if rc.VerifiedAt != nil {
			verified = rc.VerifiedAt.In(time.Local).Format(timeLayout)
		}
		title := rc.ElectionTitle
		if title == "" {
			title = rc.ElectionID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rc.Code, title, rc.CastAt.In(time.Local).Format(timeLayout), verified)
	}
	return w.Flush()
}
