package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/config"
	"github.com/dmitrijs2005/evote/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = config.MemoryDSN
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestNewApp_InMemory(t *testing.T) {
	app, err := NewApp(memoryConfig())
	require.NoError(t, err)
	assert.Nil(t, app.db)
	assert.NotNil(t, app.grpcSvc.Voting)
	assert.NotNil(t, app.grpcSvc.Notifier)
}

func TestNewApp_StorageError(t *testing.T) {
	orig := openStorage
	t.Cleanup(func() { openStorage = orig })
	openStorage = func(ctx context.Context, c *config.Config) (*sql.DB, dbx.Transactor, repomanager.RepositoryManager, error) {
		return nil, nil, nil, errors.New("dial tcp: refused")
	}

	_, err := NewApp(memoryConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}
