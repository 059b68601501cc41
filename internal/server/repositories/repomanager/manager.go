// Package repomanager wires concrete repository implementations to database
// handles. Repositories are constructed per call around a dbx.DBTX, so the
// same repository code runs against a plain connection or inside a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/qrcontact/internal/dbx"
	"github.com/dmitrijs2005/qrcontact/internal/server/repositories/counters"
	"github.com/dmitrijs2005/qrcontact/internal/server/repositories/profiles"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Counters(db dbx.DBTX) counters.Repository
}
