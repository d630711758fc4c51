package database

import (
	"regexp"
	"strings"

	"github.com/juju/errors"
)

// identifierPattern accepts the names the editor is willing to interpolate:
// ASCII letters, digits and underscore, not starting with a digit.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Dialect captures the SQL differences between the supported engines
type Dialect struct {
	Name  string
	quote string
}

var (
	// SQLite is the dialect of mattn/go-sqlite3
	SQLite = Dialect{Name: "sqlite3", quote: `"`}

	// MySQL is the dialect of go-sql-driver/mysql
	MySQL = Dialect{Name: "mysql", quote: "`"}
)

// DialectFor returns the dialect for a driver name
func DialectFor(driver string) Dialect {
	if driver == "mysql" {
		return MySQL
	}
	return SQLite
}

// Quote wraps an identifier in the dialect's quote characters
func (d Dialect) Quote(name string) string {
	return d.quote + strings.ReplaceAll(name, d.quote, d.quote+d.quote) + d.quote
}

// ValidateIdentifier rejects names that cannot be safely interpolated
func ValidateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return errors.NotValidf("identifier %q", name)
	}
	return nil
}
