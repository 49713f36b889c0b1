// Package repomanager wires repositories to a database handle, so services
// can obtain a repository bound to either *sql.DB or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/reacademix/authd/internal/dbx"
	"github.com/reacademix/authd/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
