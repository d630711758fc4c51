// Package exercise holds the classroom schemas and the fixed statement
// batteries that run against them. Every exercise owns one database:
// schemas/<name>.sql defines tables, views and triggers, seeds/<name>.sql
// inserts the sample rows, and Steps is the ordered list of queries and
// modifications whose results are printed.
package exercise

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/database"
)

//go:embed schemas/*.sql seeds/*.sql
var builtinFiles embed.FS

// StepKind distinguishes read-only steps from modifications
type StepKind int

const (
	// StepQuery runs one SELECT and prints its rows
	StepQuery StepKind = iota
	// StepExec runs statements in a transaction and prints rows affected
	StepExec
)

// Outcome is what a step is expected to do against the seeded database
type Outcome int

const (
	// ExpectSuccess means the step must complete
	ExpectSuccess Outcome = iota
	// ExpectRejected means a constraint or trigger must refuse the step
	ExpectRejected
)

// Statement is one SQL statement with its positional arguments
type Statement struct {
	SQL  string
	Args []interface{}
}

// Step is one entry of an exercise battery
type Step struct {
	Title      string
	Kind       StepKind
	Expect     Outcome
	Statements []Statement
}

// SQL builds a Statement
func SQL(query string, args ...interface{}) Statement {
	return Statement{SQL: query, Args: args}
}

// Query builds a read step
func Query(title, query string, args ...interface{}) Step {
	return Step{Title: title, Kind: StepQuery, Statements: []Statement{SQL(query, args...)}}
}

// Exec builds a modification step that must succeed
func Exec(title string, stmts ...Statement) Step {
	return Step{Title: title, Kind: StepExec, Statements: stmts}
}

// Reject builds a modification step that the database must refuse
func Reject(title string, stmts ...Statement) Step {
	return Step{Title: title, Kind: StepExec, Expect: ExpectRejected, Statements: stmts}
}

// Seeder fills a freshly created schema with sample rows
type Seeder func(ctx context.Context, db *database.Pool) error

// Exercise is a named schema plus its statement battery
type Exercise struct {
	Name        string
	Title       string
	Description string

	// ForeignKeys enables FOREIGN KEY enforcement on the connection
	ForeignKeys bool

	Steps []Step

	// Files holds schemas/<Name>.sql and seeds/<Name>.sql; nil selects the built-in set
	Files fs.FS

	// Seed replaces seeds/<Name>.sql when set
	Seed Seeder
}

func (e *Exercise) files() fs.FS {
	if e.Files != nil {
		return e.Files
	}
	return builtinFiles
}

// Schema returns the DDL script
func (e *Exercise) Schema() (string, error) {
	b, err := fs.ReadFile(e.files(), "schemas/"+e.Name+".sql")
	if err != nil {
		return "", errors.Annotatef(err, "read schema for %s", e.Name)
	}
	return string(b), nil
}

// SeedScript returns the sample data script, or "" when the exercise has none
func (e *Exercise) SeedScript() (string, error) {
	b, err := fs.ReadFile(e.files(), "seeds/"+e.Name+".sql")
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Annotatef(err, "read seed for %s", e.Name)
	}
	return string(b), nil
}

// Queries counts read steps
func (e *Exercise) Queries() int {
	n := 0
	for _, s := range e.Steps {
		if s.Kind == StepQuery {
			n++
		}
	}
	return n
}

var registry = map[string]*Exercise{}

// Register adds an exercise to the catalogue. It panics on duplicate names.
func Register(e *Exercise) {
	if e == nil || e.Name == "" {
		panic("exercise: Register with empty exercise")
	}
	if _, dup := registry[e.Name]; dup {
		panic("exercise: Register called twice for " + e.Name)
	}
	registry[e.Name] = e
}

// Get returns a registered exercise by name
func Get(name string) (*Exercise, error) {
	e, ok := registry[name]
	if !ok {
		return nil, errors.NotFoundf("exercise %q", name)
	}
	return e, nil
}

// Names returns all registered exercise names in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered exercises ordered by name
func All() []*Exercise {
	names := Names()
	out := make([]*Exercise, len(names))
	for i, name := range names {
		out[i] = registry[name]
	}
	return out
}
