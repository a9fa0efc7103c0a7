package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/server/repositories/elections"
	"github.com/dmitrijs2005/evote/internal/server/repositories/publications"
	"github.com/dmitrijs2005/evote/internal/server/repositories/users"
	"github.com/dmitrijs2005/evote/internal/server/repositories/votes"
)

// MemoryRepositoryManager hands out one shared in-memory repository per
// kind and ignores the DBTX argument. Pair it with dbx.NoTx.
type MemoryRepositoryManager struct {
	elections    *elections.MemoryRepository
	votes        *votes.MemoryRepository
	users        *users.MemoryRepository
	publications *publications.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		elections:    elections.NewMemoryRepository(),
		votes:        votes.NewMemoryRepository(),
		users:        users.NewMemoryRepository(),
		publications: publications.NewMemoryRepository(),
	}
}

// RunMigrations is a no-op: memory stores need no schema.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Elections(dbx.DBTX) elections.Repository { return m.elections }

func (m *MemoryRepositoryManager) Votes(dbx.DBTX) votes.Repository { return m.votes }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Publications(dbx.DBTX) publications.Repository {
	return m.publications
}

// VoteStore exposes the concrete vote store for tests that need to tamper
// with stored ballots.
func (m *MemoryRepositoryManager) VoteStore() *votes.MemoryRepository { return m.votes }
