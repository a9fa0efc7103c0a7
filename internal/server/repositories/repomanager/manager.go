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

// RepositoryManager vends repositories bound to a DBTX, so that services can
// obtain the same set of stores either on a plain connection or inside a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Elections(db dbx.DBTX) elections.Repository
	Votes(db dbx.DBTX) votes.Repository
	Users(db dbx.DBTX) users.Repository
	Publications(db dbx.DBTX) publications.Repository
}
