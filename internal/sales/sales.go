// Package sales is the three-table sales ledger: salesmen, customers and
// the sales between them. It provides the fixed reports and the data
// management operations behind the "classdb sales" commands.
package sales

import (
	"context"
	"embed"
	"io/fs"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/willfong/classroom-sql/internal/database"
)

var logger = loggo.GetLogger("classdb.sales")

// Name is the exercise and database name of the ledger
const Name = "sales-app"

//go:embed schemas/*.sql seeds/*.sql
var files embed.FS

// Files returns the embedded schema and seed scripts
func Files() fs.FS {
	return files
}

// ErrHasSales is returned when deleting a salesman or customer that still has sales
const ErrHasSales = errors.ConstError("has sales")

// Service runs reports and edits against one ledger database
type Service struct {
	db *database.Pool
}

// New creates a service on an open pool
func New(db *database.Pool) *Service {
	return &Service{db: db}
}

// Setup creates the tables if absent and seeds them when empty
func (s *Service) Setup(ctx context.Context) error {
	schema, err := fs.ReadFile(files, "schemas/"+Name+".sql")
	if err != nil {
		return errors.Annotate(err, "read schema")
	}
	if err := s.db.ExecScript(ctx, string(schema)); err != nil {
		return errors.Annotate(err, "create sales schema")
	}
	return s.Seed(ctx)
}

// Seed inserts the sample rows, but only into an empty Salesmen table
func (s *Service) Seed(ctx context.Context) error {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM Salesmen`); err != nil {
		return errors.Annotate(err, "count salesmen")
	}
	if n > 0 {
		logger.Debugf("salesmen table has %d rows, sample data skipped", n)
		return nil
	}

	seed, err := fs.ReadFile(files, "seeds/"+Name+".sql")
	if err != nil {
		return errors.Annotate(err, "read seed")
	}
	if err := s.db.ExecScript(ctx, string(seed)); err != nil {
		return errors.Annotate(err, "insert sample data")
	}
	logger.Infof("sample sales data inserted")
	return nil
}
