package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/evote/internal/client/client"
	"github.com/dmitrijs2005/evote/internal/client/config"
	"github.com/dmitrijs2005/evote/internal/client/services"
	"github.com/dmitrijs2005/evote/internal/filex"
	"github.com/dmitrijs2005/evote/internal/timex"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const dbFileName = "receipts.db"

type App struct {
	config  *config.Config
	repos   *client.Repositories
	session services.SessionService
	voter   services.VoterService
	admin   services.AdminService

	mu       sync.Mutex
	Mode     Mode
	loggedIn bool

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	dir, err := filex.EnsureSubdDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewElectionClient(c.ServerEndpointAddr)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	return &App{
		config:  c,
		repos:   repos,
		session: services.NewSessionService(apiClient, repos.Metadata),
		voter:   services.NewVoterService(apiClient, repos.Receipts, timex.SystemClock{}),
		admin:   services.NewAdminService(apiClient),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loggedIn
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := ""
	if a.loggedIn {
		s = "token "
	}
	s += string(a.Mode)
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.session.Close(ctx)
		_ = a.repos.Close()
	}()

	log.Println("Welcome to evote CLI (type 'help' for commands)")

	a.restoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// restoreSession prefers a token from the environment over the saved one.
func (a *App) restoreSession(ctx context.Context) {
	if a.config.AccessToken != "" {
		if err := a.session.Login(ctx, a.config.AccessToken); err != nil {
			log.Printf("error applying token from environment: %v", err)
			return
		}
		a.loggedIn = true
		return
	}

	ok, err := a.session.Restore(ctx)
	if err != nil {
		log.Printf("error restoring session: %v", err)
	}
	a.loggedIn = ok
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.session.Ping(ctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
