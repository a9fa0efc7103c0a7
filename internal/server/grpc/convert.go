package grpc

import (
	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/dmitrijs2005/evote/internal/server/services"
)

func userToAPI(u *models.User) *api.User {
	return &api.User{ID: u.ID, Email: u.Email, Role: u.Role, Active: u.Active, Verified: u.Verified}
}

func campaignToAPI(c models.Campaign) api.Campaign {
	return api.Campaign{
		Experience:   c.Experience,
		Education:    c.Education,
		Achievements: c.Achievements,
		Promises:     c.Promises,
		Social:       c.Social,
	}
}

func campaignFromAPI(c api.Campaign) models.Campaign {
	return models.Campaign{
		Experience:   c.Experience,
		Education:    c.Education,
		Achievements: c.Achievements,
		Promises:     c.Promises,
		Social:       c.Social,
	}
}

// electionToAPI exposes positions and candidates by their keys.
func electionToAPI(e *models.Election) *api.Election {
	out := &api.Election{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		Status:      string(e.Status),
		TotalVotes:  e.TotalVotes,
		CreatorID:   e.CreatorID,
		PublicKey:   e.PublicKey,
		CreatedAt:   e.CreatedAt,
		Positions:   make([]*api.Position, 0, len(e.Positions)),
	}
	for _, p := range e.Positions {
		ap := &api.Position{
			ID:          p.PositionKey,
			Title:       p.Title,
			Description: p.Description,
			Candidates:  make([]*api.Candidate, 0, len(p.Candidates)),
		}
		for _, c := range p.Candidates {
			ap.Candidates = append(ap.Candidates, &api.Candidate{
				ID:       c.CandidateKey,
				UserID:   c.UserID,
				Name:     c.Name,
				Bio:      c.Bio,
				Symbol:   c.Symbol,
				Agenda:   c.Agenda,
				Campaign: campaignToAPI(c.Campaign),
				Photo:    c.Photo,
				Votes:    c.Votes,
			})
		}
		out.Positions = append(out.Positions, ap)
	}
	return out
}

func createInputFromAPI(req *api.CreateElectionRequest, creatorID string) services.CreateElectionInput {
	in := services.CreateElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		CreatorID:   creatorID,
		Positions:   make([]services.PositionInput, 0, len(req.Positions)),
	}
	for _, p := range req.Positions {
		if p == nil {
			continue
		}
		pi := services.PositionInput{Key: p.ID, Title: p.Title, Description: p.Description}
		for _, c := range p.Candidates {
			if c == nil {
				continue
			}
			pi.Candidates = append(pi.Candidates, services.CandidateInput{
				Key:      c.ID,
				UserID:   c.UserID,
				Name:     c.Name,
				Bio:      c.Bio,
				Symbol:   c.Symbol,
				Agenda:   c.Agenda,
				Campaign: campaignFromAPI(c.Campaign),
				Photo:    c.Photo,
			})
		}
		in.Positions = append(in.Positions, pi)
	}
	return in
}

func resultsToAPI(r *models.Results) *api.Results {
	out := &api.Results{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Status:        string(r.Status),
		TotalVotes:    r.TotalVotes,
		VerifiedVotes: r.VerifiedVotes,
		Positions:     make([]*api.PositionResult, 0, len(r.Positions)),
	}
	for _, p := range r.Positions {
		ap := &api.PositionResult{
			PositionID:  p.PositionID,
			Title:       p.Title,
			Description: p.Description,
			TotalVotes:  p.TotalVotes,
			Candidates:  make([]*api.CandidateResult, 0, len(p.Candidates)),
		}
		for _, c := range p.Candidates {
			ap.Candidates = append(ap.Candidates, &api.CandidateResult{
				ID:          c.ID,
				CandidateID: c.CandidateID,
				Name:        c.Name,
				Votes:       c.Votes,
				Percentage:  c.Percentage,
				Photo:       c.Photo,
				Symbol:      c.Symbol,
			})
		}
		if p.Winner != nil && len(ap.Candidates) > 0 {
			ap.Winner = ap.Candidates[0]
		}
		out.Positions = append(out.Positions, ap)
	}
	return out
}
