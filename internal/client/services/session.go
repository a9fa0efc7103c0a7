// Package services contains the application services behind the evote CLI
// commands: session handling, voter operations and election administration.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/evote/internal/client/client"
	"github.com/dmitrijs2005/evote/internal/client/repositories/metadata"
)

// SessionService keeps the access token in the local database so it
// survives restarts of the CLI.
type SessionService interface {
	// Restore loads a saved token into the client and reports whether one
	// was found.
	Restore(ctx context.Context) (bool, error)
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type sessionService struct {
	client       client.Client
	metadataRepo metadata.Repository
}

func NewSessionService(c client.Client, metadataRepo metadata.Repository) SessionService {
	return &sessionService{client: c, metadataRepo: metadataRepo}
}

func (s *sessionService) Restore(ctx context.Context) (bool, error) {
	token, ok, err := s.metadataRepo.Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		return false, err
	}
	if !ok || token == "" {
		return false, nil
	}
	s.client.SetToken(token)
	return true, nil
}

// Login stores token and uses it for subsequent calls. The server checks
// the token on the first protected call.
func (s *sessionService) Login(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := s.metadataRepo.Set(ctx, metadata.KeyAccessToken, token); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}
	s.client.SetToken(token)
	return nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.client.SetToken("")
	return s.metadataRepo.Delete(ctx, metadata.KeyAccessToken)
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *sessionService) Close(ctx context.Context) error {
	return s.client.Close()
}
