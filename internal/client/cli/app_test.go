package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/client/client"
	"github.com/dmitrijs2005/evote/internal/client/config"
	"github.com/dmitrijs2005/evote/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mu        sync.Mutex
	token     string
	loginErr  error
	pingErr   error
	loggedOut bool
}

func (f *fakeSession) Restore(ctx context.Context) (bool, error) { return f.token != "", nil }
func (f *fakeSession) Login(ctx context.Context, token string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = token
	return nil
}
func (f *fakeSession) Logout(ctx context.Context) error { f.loggedOut = true; f.token = ""; return nil }
func (f *fakeSession) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}
func (f *fakeSession) Close(ctx context.Context) error  { return nil }

type fakeVoter struct {
	elections []*api.Election
	election  *api.Election
	receipt   *models.Receipt
	receipts  []*models.Receipt
	results   *api.Results
	verify    *api.VerifyVoteResponse
	err       error

	lastCast []string
}

func (f *fakeVoter) Elections(ctx context.Context) ([]*api.Election, error) {
	return f.elections, f.err
}
func (f *fakeVoter) Election(ctx context.Context, id string) (*api.Election, error) {
	return f.election, f.err
}
func (f *fakeVoter) Cast(ctx context.Context, electionID, positionID, candidateID string) (*models.Receipt, error) {
	f.lastCast = []string{electionID, positionID, candidateID}
	return f.receipt, f.err
}
func (f *fakeVoter) Verify(ctx context.Context, code string) (*api.VerifyVoteResponse, error) {
	return f.verify, f.err
}
func (f *fakeVoter) Results(ctx context.Context, electionID string) (*api.Results, error) {
	return f.results, f.err
}
func (f *fakeVoter) Receipts(ctx context.Context) ([]*models.Receipt, error) {
	return f.receipts, f.err
}

type fakeAdmin struct {
	user     *api.User
	token    string
	election *api.Election
	publish  *api.PublishResultsResponse
	err      error

	lastRegister []any
	deleted      string
	lastDest     string
}

func (f *fakeAdmin) Register(ctx context.Context, email, role string, verified bool) (*api.User, string, error) {
	f.lastRegister = []any{email, role, verified}
	return f.user, f.token, f.err
}
func (f *fakeAdmin) CreateFromFile(ctx context.Context, path string) (*api.Election, error) {
	return f.election, f.err
}
func (f *fakeAdmin) UpdateFromFile(ctx context.Context, id, path string) (*api.Election, error) {
	return f.election, f.err
}
func (f *fakeAdmin) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return f.err
}
func (f *fakeAdmin) Publish(ctx context.Context, electionID, dest string) (*api.PublishResultsResponse, error) {
	f.lastDest = dest
	return f.publish, f.err
}

func newTestApp(input string) (*App, *bytes.Buffer, *fakeSession, *fakeVoter, *fakeAdmin) {
	var out bytes.Buffer
	s, v, ad := &fakeSession{}, &fakeVoter{}, &fakeAdmin{}
	return &App{session: s, voter: v, admin: ad, reader: rdr(input), out: &out}, &out, s, v, ad
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app := &App{}
	var buf bytes.Buffer

	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(&buf)

	app.setMode(ModeOnline)
	require.Equal(t, ModeOnline, app.Mode)
	require.NotEmpty(t, buf.String())

	buf.Reset()
	app.setMode(ModeOnline)
	require.Empty(t, buf.String())

	app.setMode(ModeOffline)
	require.Equal(t, ModeOffline, app.Mode)
	require.NotEmpty(t, buf.String())
}

func TestGetStatus(t *testing.T) {
	app := &App{}
	require.Equal(t, "", app.getStatus())

	app.Mode = ModeOnline
	require.Equal(t, "(online) ", app.getStatus())

	app.loggedIn = true
	require.Equal(t, "(token online) ", app.getStatus())
}

func TestOnlineStatusWatcher(t *testing.T) {
	old := log.Writer()
	log.SetOutput(&bytes.Buffer{})
	defer log.SetOutput(old)

	app, _, s, _, _ := newTestApp("")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return app.Mode == ModeOnline
	}, time.Second, 5*time.Millisecond)

	s.mu.Lock()
	s.pingErr = client.ErrUnavailable
	s.mu.Unlock()

	require.Eventually(t, func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return app.Mode == ModeOffline
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestTokenAndLogout(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("tok"), nil }

	app, out, s, _, _ := newTestApp("")
	require.NoError(t, app.Token(context.Background()))
	require.True(t, app.isLoggedIn())
	require.Equal(t, "tok", s.token)
	require.Contains(t, out.String(), "Token saved")

	require.NoError(t, app.Logout(context.Background()))
	require.False(t, app.isLoggedIn())
	require.True(t, s.loggedOut)
}

func TestToken_LoginError(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte(""), nil }

	app, out, s, _, _ := newTestApp("")
	s.loginErr = errors.New("empty token")
	require.Error(t, app.Token(context.Background()))
	require.False(t, app.isLoggedIn())
	require.Contains(t, out.String(), "Error: empty token")
}

func TestElectionsAndShow(t *testing.T) {
	app, out, _, v, _ := newTestApp("")
	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	e := &api.Election{
		ID: "e1", Title: "Board", Status: "active", StartAt: start, EndAt: start.Add(2 * time.Hour), TotalVotes: 7,
		Positions: []*api.Position{{ID: "chair", Title: "Chair", Candidates: []*api.Candidate{{ID: "A", Name: "Ann"}}}},
	}
	v.elections = []*api.Election{e}
	v.election = e

	require.NoError(t, app.Elections(context.Background()))
	require.Contains(t, out.String(), "Board")
	require.Contains(t, out.String(), "active")

	out.Reset()
	require.NoError(t, app.Show(context.Background(), []string{"e1"}))
	require.Contains(t, out.String(), "Chair (chair)")
	require.Contains(t, out.String(), "Ann")

	out.Reset()
	require.ErrorIs(t, app.Show(context.Background(), nil), errUsage)
	require.Contains(t, out.String(), "Usage: show")
}

func TestElections_Empty(t *testing.T) {
	app, out, _, _, _ := newTestApp("")
	require.NoError(t, app.Elections(context.Background()))
	require.Equal(t, "No elections\n", out.String())
}

func TestCast(t *testing.T) {
	app, out, _, v, _ := newTestApp("")
	v.receipt = &models.Receipt{Code: "VER-00000000000000AB"}

	require.NoError(t, app.Cast(context.Background(), []string{"e1", "B", "chair"}))
	require.Equal(t, []string{"e1", "chair", "B"}, v.lastCast)
	require.Contains(t, out.String(), "VER-00000000000000AB")

	require.ErrorIs(t, app.Cast(context.Background(), []string{"e1"}), errUsage)
}

func TestCast_ReceiptSaveFailureStillShowsCode(t *testing.T) {
	app, out, _, v, _ := newTestApp("")
	v.receipt = &models.Receipt{Code: "VER-00000000000000AB"}
	v.err = errors.New("receipt saving error: disk full")

	require.Error(t, app.Cast(context.Background(), []string{"e1", "B"}))
	require.Equal(t, []string{"e1", "", "B"}, v.lastCast)
	require.Contains(t, out.String(), "VER-00000000000000AB")
	require.Contains(t, out.String(), "disk full")
}

func TestReportMapsClientErrors(t *testing.T) {
	app, out, _, v, _ := newTestApp("")

	for _, tc := range []struct {
		err  error
		want string
	}{
		{client.ErrUnavailable, "Server unavailable"},
		{fmt.Errorf("%w: forbidden", client.ErrUnauthorized), "Use 'token' to log in"},
		{client.ErrNotFound, "Not found"},
	} {
		out.Reset()
		v.err = tc.err
		require.ErrorIs(t, app.Results(context.Background(), []string{"e1"}), tc.err)
		require.Contains(t, out.String(), tc.want)
	}
}

func TestResultsMarksWinner(t *testing.T) {
	app, out, _, v, _ := newTestApp("")
	ann := &api.CandidateResult{CandidateID: "A", Name: "Ann", Votes: 2, Percentage: 66.67}
	v.results = &api.Results{Title: "Board", Status: "completed", TotalVotes: 3, Positions: []*api.PositionResult{{
		Title: "Chair", TotalVotes: 3, Winner: ann,
		Candidates: []*api.CandidateResult{ann, {CandidateID: "B", Name: "Ben", Votes: 1, Percentage: 33.33}},
	}}}

	require.NoError(t, app.Results(context.Background(), []string{"e1"}))
	require.Contains(t, out.String(), "*A")
	require.Contains(t, out.String(), "66.67%")
	require.NotContains(t, out.String(), "*B")
}

func TestVerifyAndReceipts(t *testing.T) {
	app, out, _, v, _ := newTestApp("")
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	v.verify = &api.VerifyVoteResponse{Verified: true, ElectionID: "e1", Timestamp: now}
	v.receipts = []*models.Receipt{{Code: "VER-1", ElectionTitle: "Board", CastAt: now, VerifiedAt: &now}, {Code: "VER-2", ElectionID: "e2", CastAt: now}}

	require.NoError(t, app.Verify(context.Background(), []string{"VER-1"}))
	require.Contains(t, out.String(), "Verified: vote in election e1")

	out.Reset()
	require.NoError(t, app.Receipts(context.Background()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "Board")
	require.Contains(t, lines[2], "e2")
	require.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "-"))
}

func TestRegister(t *testing.T) {
	app, out, _, _, ad := newTestApp("")
	ad.user = &api.User{ID: "u1", Email: "a@b.c", Role: "voter", Verified: true}
	ad.token = "TOKEN"

	require.NoError(t, app.Register(context.Background(), []string{"a@b.c", "voter", "true"}))
	require.Equal(t, []any{"a@b.c", "voter", true}, ad.lastRegister)
	require.Contains(t, out.String(), "TOKEN")

	require.ErrorIs(t, app.Register(context.Background(), []string{"a@b.c", "root"}), errUsage)
	require.ErrorIs(t, app.Register(context.Background(), []string{"a@b.c", "voter", "maybe"}), errUsage)
}

func TestCreateAndUpdate(t *testing.T) {
	app, out, _, _, ad := newTestApp("")
	ad.election = &api.Election{ID: "e9"}

	require.NoError(t, app.Create(context.Background(), []string{"election.json"}))
	require.Contains(t, out.String(), "Created election e9")

	require.NoError(t, app.Update(context.Background(), []string{"e9", "changes.json"}))
	require.Contains(t, out.String(), "Updated election e9")

	require.ErrorIs(t, app.Update(context.Background(), []string{"e9"}), errUsage)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	app, out, _, _, ad := newTestApp("n\ny\n")

	require.NoError(t, app.Delete(context.Background(), []string{"e1"}))
	require.Empty(t, ad.deleted)
	require.Contains(t, out.String(), "Cancelled")

	require.NoError(t, app.Delete(context.Background(), []string{"e1"}))
	require.Equal(t, "e1", ad.deleted)
}

func TestPublish(t *testing.T) {
	app, out, _, _, ad := newTestApp("")
	ad.publish = &api.PublishResultsResponse{StorageKey: "results/e1.json", URL: "https://dl", TotalVotes: 3}

	require.NoError(t, app.Publish(context.Background(), []string{"e1", "out.json"}))
	require.Equal(t, "out.json", ad.lastDest)
	require.Contains(t, out.String(), "Published 3 votes to results/e1.json")
	require.Contains(t, out.String(), "Saved to out.json")
}

func TestRestoreSession(t *testing.T) {
	t.Run("saved token", func(t *testing.T) {
		app, _, s, _, _ := newTestApp("")
		app.config = &config.Config{}
		s.token = "saved"

		app.restoreSession(context.Background())
		require.True(t, app.isLoggedIn())
	})

	t.Run("environment token wins", func(t *testing.T) {
		app, _, s, _, _ := newTestApp("")
		app.config = &config.Config{AccessToken: "from-env"}
		s.token = "saved"

		app.restoreSession(context.Background())
		require.True(t, app.isLoggedIn())
		require.Equal(t, "from-env", s.token)
	})

	t.Run("environment token rejected", func(t *testing.T) {
		old := log.Writer()
		defer log.SetOutput(old)
		log.SetOutput(&bytes.Buffer{})

		app, _, s, _, _ := newTestApp("")
		app.config = &config.Config{AccessToken: "x"}
		s.loginErr = errors.New("disk full")

		app.restoreSession(context.Background())
		require.False(t, app.isLoggedIn())
	})

	t.Run("nothing saved", func(t *testing.T) {
		app, _, _, _, _ := newTestApp("")
		app.config = &config.Config{}

		app.restoreSession(context.Background())
		require.False(t, app.isLoggedIn())
	})
}
