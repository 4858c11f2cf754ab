package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/plantkeeper/internal/dbx"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/assignments"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/measurements"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/photos"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/plants"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/pots"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// factory serves both plain connections and open transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Plants(db dbx.DBTX) plants.Repository
	Pots(db dbx.DBTX) pots.Repository
	Assignments(db dbx.DBTX) assignments.Repository
	Measurements(db dbx.DBTX) measurements.Repository
	Photos(db dbx.DBTX) photos.Repository
}
