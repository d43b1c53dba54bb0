package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/kanbord/internal/dbx"
	"github.com/dmitrijs2005/kanbord/internal/server/repositories/notes"
	"github.com/dmitrijs2005/kanbord/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX so the same
// service code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
