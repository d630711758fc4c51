// Package database wraps the SQL connection used by every exercise and
// application. SQLite (mattn/go-sqlite3) is the default engine; MySQL
// (go-sql-driver/mysql) is supported for the portable parts.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/willfong/classroom-sql/internal/config"
)

var logger = loggo.GetLogger("classdb.database")

// ensureParseTime makes go-sql-driver/mysql scan DATE and DATETIME columns
// into time.Time unless the DSN already decides.
func ensureParseTime(dsn string) string {
	if strings.Contains(strings.ToLower(dsn), "parsetime=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "parseTime=true"
}

// sqliteDSN turns a file path into a go-sqlite3 URI carrying the
// connection options. Options already present in the DSN win.
func sqliteDSN(cfg config.DatabaseConfig) string {
	path, query, _ := strings.Cut(cfg.DSN, "?")
	params, err := url.ParseQuery(query)
	if err != nil {
		params = url.Values{}
	}

	if params.Get("_foreign_keys") == "" && params.Get("_fk") == "" {
		fk := "off"
		if cfg.ForeignKeys {
			fk = "on"
		}
		params.Set("_foreign_keys", fk)
	}
	if params.Get("_busy_timeout") == "" && params.Get("_timeout") == "" && cfg.BusyTimeout > 0 {
		params.Set("_busy_timeout", fmt.Sprint(cfg.BusyTimeout.Milliseconds()))
	}

	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + "?" + params.Encode()
}

// ensureDataDir creates the directory of a SQLite file DSN.
func ensureDataDir(dsn string) error {
	if strings.Contains(dsn, ":memory:") {
		return nil
	}
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return errors.Annotatef(os.MkdirAll(dir, 0o755), "creating data directory %s", dir)
}

// Pool is the connection to one exercise database. Every statement that goes
// through it is timed, counted and logged at trace level.
type Pool struct {
	db      *sqlx.DB
	config  config.DatabaseConfig
	dialect Dialect
	stats   queryStats
}

// NewPool opens (but does not ping) the database described by cfg.
func NewPool(cfg config.DatabaseConfig) (*Pool, error) {
	if cfg.DSN == "" {
		return nil, errors.NotValidf("empty database DSN")
	}
	if cfg.Driver == "" {
		cfg.Driver = config.DBDriver
	}

	dsn := cfg.DSN
	switch cfg.Driver {
	case "sqlite3":
		if err := ensureDataDir(cfg.DSN); err != nil {
			return nil, err
		}
		dsn = sqliteDSN(cfg)
		// Pragmas are per connection, so a second one would not see them.
		cfg.MaxOpenConns, cfg.MaxIdleConns = 1, 1
	case "mysql":
		dsn = ensureParseTime(cfg.DSN)
	default:
		return nil, errors.NotSupportedf("database driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, errors.Annotatef(err, "opening %s database", cfg.Driver)
	}
	applyLimits(db, cfg)

	return &Pool{db: db, config: cfg, dialect: DialectFor(cfg.Driver)}, nil
}

func applyLimits(db *sqlx.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// Connect pings the database so a bad path or DSN fails early.
func (p *Pool) Connect(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return errors.Annotatef(err, "connecting to %s", p.config.DSN)
	}
	logger.Debugf("connected to %s database %s", p.config.Driver, p.config.DSN)
	return nil
}

func (p *Pool) Close() error {
	return p.db.Close()
}

// DB exposes the sqlx handle for callers that need it directly.
func (p *Pool) DB() *sqlx.DB {
	return p.db
}

func (p *Pool) Dialect() Dialect {
	return p.dialect
}

// Config is the configuration after driver defaults were applied.
func (p *Pool) Config() config.DatabaseConfig {
	return p.config
}

func (p *Pool) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	done := p.stats.begin(query)
	rows, err := p.db.QueryContext(ctx, query, args...)
	done(err)
	return rows, err
}

// QueryRowContext defers errors to Scan, so it is always counted as a success.
func (p *Pool) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	done := p.stats.begin(query)
	row := p.db.QueryRowContext(ctx, query, args...)
	done(nil)
	return row
}

func (p *Pool) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	done := p.stats.begin(query)
	res, err := p.db.ExecContext(ctx, query, args...)
	done(err)
	return res, err
}

// GetContext scans one row into dest. sql.ErrNoRows is returned but not
// counted as a failed query.
func (p *Pool) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	done := p.stats.begin(query)
	err := p.db.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		done(nil)
	} else {
		done(err)
	}
	return err
}

// SelectContext scans every row into the slice pointed to by dest.
func (p *Pool) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	done := p.stats.begin(query)
	err := p.db.SelectContext(ctx, dest, query, args...)
	done(err)
	return err
}

func (p *Pool) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return p.db.BeginTxx(ctx, opts)
}

// ExecScript runs a multi-statement script (schema, triggers, seed rows) in
// one transaction. Only go-sqlite3 executes every statement of one Exec.
func (p *Pool) ExecScript(ctx context.Context, script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}
	if p.dialect != SQLite {
		return errors.NotSupportedf("multi-statement scripts on %s", p.dialect.Name)
	}

	tx, err := p.BeginTx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "beginning script transaction")
	}
	defer tx.Rollback()

	done := p.stats.begin("<script>")
	_, err = tx.ExecContext(ctx, script)
	done(err)
	if err != nil {
		return errors.Annotate(err, "running script")
	}
	return errors.Annotate(tx.Commit(), "committing script")
}

// Stats combines database/sql connection counters with the pool's own
// query counters.
func (p *Pool) Stats() PoolStats {
	db := p.db.Stats()
	return PoolStats{
		OpenConnections: db.OpenConnections,
		InUse:           db.InUse,
		Idle:            db.Idle,
		TotalQueries:    p.stats.total,
		FailedQueries:   p.stats.failed,
		AvgLatency:      p.stats.average(),
	}
}

type PoolStats struct {
	OpenConnections int
	InUse           int
	Idle            int

	TotalQueries  int64
	FailedQueries int64
	AvgLatency    time.Duration
}

// queryStats is only touched from the goroutine running the exercise.
type queryStats struct {
	total   int64
	failed  int64
	latency time.Duration
}

// begin starts timing query; the returned func records the outcome.
func (s *queryStats) begin(query string) func(error) {
	start := time.Now()
	return func(err error) {
		took := time.Since(start)
		s.total++
		s.latency += took
		if err != nil {
			s.failed++
			logger.Debugf("query failed after %v: %s: %v", took, compact(query), err)
			return
		}
		logger.Tracef("query ok in %v: %s", took, compact(query))
	}
}

func (s *queryStats) average() time.Duration {
	if s.total == 0 {
		return 0
	}
	return s.latency / time.Duration(s.total)
}

// compact folds a multi-line statement onto one log line.
func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
