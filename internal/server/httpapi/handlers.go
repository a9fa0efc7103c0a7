package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/gin-gonic/gin"
)

type candidateView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Symbol string `json:"symbol"`
	Agenda string `json:"agenda"`
	Photo  string `json:"photo"`
}

type positionView struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Candidates  []candidateView `json:"candidates"`
}

type electionView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     time.Time      `json:"endDate"`
	Status      models.Status  `json:"status"`
	TotalVotes  int64          `json:"totalVotes"`
	PublicKey   string         `json:"publicKey"`
	Positions   []positionView `json:"positions"`
}

func newElectionView(e *models.Election) electionView {
	v := electionView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartAt,
		EndDate:     e.EndAt,
		Status:      e.Status,
		TotalVotes:  e.TotalVotes,
		PublicKey:   e.PublicKey,
		Positions:   make([]positionView, 0, len(e.Positions)),
	}
	for _, p := range e.Positions {
		pv := positionView{ID: p.PositionKey, Title: p.Title, Description: p.Description, Candidates: make([]candidateView, 0, len(p.Candidates))}
		for _, c := range p.Candidates {
			pv.Candidates = append(pv.Candidates, candidateView{
				ID:     c.CandidateKey,
				Name:   c.Name,
				Bio:    c.Bio,
				Symbol: c.Symbol,
				Agenda: c.Agenda,
				Photo:  c.Photo,
			})
		}
		v.Positions = append(v.Positions, pv)
	}
	return v
}

// writeError answers with the sentinel's text; unknown errors are logged
// and reported as a bare 500.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrorNotFound.Error()})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": common.ErrorInternal.Error()})
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listElections(c *gin.Context) {
	list, err := s.elections.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]electionView, 0, len(list))
	for _, e := range list {
		out = append(out, newElectionView(e))
	}
	c.JSON(http.StatusOK, gin.H{"elections": out})
}

func (s *Server) getElection(c *gin.Context) {
	e, err := s.elections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newElectionView(e))
}

func (s *Server) getResults(c *gin.Context) {
	r, err := s.results.ComputeResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) getPublication(c *gin.Context) {
	pub, url, err := s.publications.Latest(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"storageKey":  pub.StorageKey,
		"url":         url,
		"totalVotes":  pub.TotalVotes,
		"publishedAt": pub.PublishedAt,
	})
}

func (s *Server) verify(c *gin.Context) {
	v, err := s.results.Verify(c.Request.Context(), c.Param("code"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
