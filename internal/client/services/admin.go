package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/client/client"
	"github.com/dmitrijs2005/evote/internal/filex"
	"github.com/dmitrijs2005/evote/internal/netx"
)

// AdminService wraps the operations reserved for administrators. Election
// definitions are read from JSON files in the API's wire format.
type AdminService interface {
	Register(ctx context.Context, email, role string, verified bool) (*api.User, string, error)
	CreateFromFile(ctx context.Context, path string) (*api.Election, error)
	UpdateFromFile(ctx context.Context, id, path string) (*api.Election, error)
	Delete(ctx context.Context, id string) error
	// Publish stores the results snapshot on the server. When dest is not
	// empty the snapshot is downloaded from the returned URL into dest.
	Publish(ctx context.Context, electionID, dest string) (*api.PublishResultsResponse, error)
}

type adminService struct {
	client   client.Client
	download func(ctx context.Context, url string) ([]byte, error)
}

func NewAdminService(c client.Client) AdminService {
	return &adminService{client: c, download: netx.Download}
}

func (s *adminService) Register(ctx context.Context, email, role string, verified bool) (*api.User, string, error) {
	return s.client.RegisterUser(ctx, email, role, verified)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (s *adminService) CreateFromFile(ctx context.Context, path string) (*api.Election, error) {
	var req api.CreateElectionRequest
	if err := readJSONFile(path, &req); err != nil {
		return nil, err
	}
	return s.client.CreateElection(ctx, &req)
}

// UpdateFromFile applies the title, description and dates from path to the
// election id. An id inside the file is ignored.
func (s *adminService) UpdateFromFile(ctx context.Context, id, path string) (*api.Election, error) {
	var req api.UpdateElectionRequest
	if err := readJSONFile(path, &req); err != nil {
		return nil, err
	}
	req.ID = id
	return s.client.UpdateElection(ctx, &req)
}

func (s *adminService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteElection(ctx, id)
}

func (s *adminService) Publish(ctx context.Context, electionID, dest string) (*api.PublishResultsResponse, error) {
	resp, err := s.client.PublishResults(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if dest == "" {
		return resp, nil
	}

	data, err := s.download(ctx, resp.URL)
	if err != nil {
		return resp, fmt.Errorf("download error: %w", err)
	}
	if err := filex.WriteFile(dest, data); err != nil {
		return resp, fmt.Errorf("save error: %w", err)
	}
	return resp, nil
}
