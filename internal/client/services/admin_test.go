package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestAdmin_CreateFromFile(t *testing.T) {
	fc := &fakeClient{Election: &api.Election{ID: "e1"}}
	s := NewAdminService(fc)

	path := writeFile(t, "election.json", `{
		"title": "Board",
		"startDate": "2026-05-01T10:00:00Z",
		"endDate": "2026-05-01T12:00:00Z",
		"positions": [{"id": "chair", "title": "Chair", "candidates": [{"id": "A", "name": "Ann"}]}]
	}`)

	e, err := s.CreateFromFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "e1", e.ID)
	require.Equal(t, "Board", fc.LastCreate.Title)
	require.Len(t, fc.LastCreate.Positions, 1)
	require.Equal(t, "A", fc.LastCreate.Positions[0].Candidates[0].ID)
}

func TestAdmin_CreateFromFile_BadJSON(t *testing.T) {
	fc := &fakeClient{}
	s := NewAdminService(fc)

	_, err := s.CreateFromFile(context.Background(), writeFile(t, "bad.json", `{`))
	require.ErrorContains(t, err, "parse")
	require.Nil(t, fc.LastCreate)

	_, err = s.CreateFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestAdmin_UpdateFromFileUsesGivenID(t *testing.T) {
	fc := &fakeClient{Election: &api.Election{ID: "e1"}}
	s := NewAdminService(fc)

	_, err := s.UpdateFromFile(context.Background(), "e1", writeFile(t, "u.json", `{"id": "other", "title": "Renamed"}`))
	require.NoError(t, err)
	require.Equal(t, "e1", fc.LastUpdate.ID)
	require.Equal(t, "Renamed", fc.LastUpdate.Title)
}

func TestAdmin_RegisterAndDelete(t *testing.T) {
	fc := &fakeClient{RegisterResult: &api.User{ID: "u1"}, RegisterToken: "T"}
	s := NewAdminService(fc)
	ctx := context.Background()

	u, tok, err := s.Register(ctx, "a@b.c", "voter", true)
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.Equal(t, "T", tok)

	require.NoError(t, s.Delete(ctx, "e1"))
	require.Equal(t, "e1", fc.LastDelete)
}

func TestAdmin_PublishDownloads(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalVotes":3}`))
	}))
	defer ts.Close()

	fc := &fakeClient{Publish: &api.PublishResultsResponse{StorageKey: "results/e1.json", URL: ts.URL + "/results/e1.json", TotalVotes: 3}}
	s := NewAdminService(fc)
	dest := filepath.Join(t.TempDir(), "e1.json")

	resp, err := s.Publish(context.Background(), "e1", dest)
	require.NoError(t, err)
	require.EqualValues(t, 3, resp.TotalVotes)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.JSONEq(t, `{"totalVotes":3}`, string(got))
}

func TestAdmin_PublishWithoutDest(t *testing.T) {
	fc := &fakeClient{Publish: &api.PublishResultsResponse{URL: "https://unused"}}
	s := &adminService{client: fc, download: func(ctx context.Context, url string) ([]byte, error) {
		t.Fatal("download must not be called")
		return nil, nil
	}}

	_, err := s.Publish(context.Background(), "e1", "")
	require.NoError(t, err)
}

func TestAdmin_PublishDownloadFailureKeepsResponse(t *testing.T) {
	fc := &fakeClient{Publish: &api.PublishResultsResponse{URL: "https://expired"}}
	s := &adminService{client: fc, download: func(ctx context.Context, url string) ([]byte, error) {
		return nil, errors.New("download failed: 403 Forbidden")
	}}

	resp, err := s.Publish(context.Background(), "e1", filepath.Join(t.TempDir(), "e1.json"))
	require.ErrorContains(t, err, "download error")
	require.NotNil(t, resp)
}

func TestAdmin_PublishError(t *testing.T) {
	denied := errors.New("unauthorized")
	s := NewAdminService(&fakeClient{PublishErr: denied})

	_, err := s.Publish(context.Background(), "e1", "")
	require.ErrorIs(t, err, denied)
}
