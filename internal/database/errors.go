package database

import (
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/juju/errors"
	"github.com/mattn/go-sqlite3"
)

// MySQL server error numbers that mean a rule rejected the statement
const (
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	mysqlCheckViolated    = 3819
	mysqlSignalException  = 1644
	mysqlColumnCannotNull = 1048
)

// IsConstraintViolation reports whether the engine rejected a statement
// because of a declared rule: CHECK, UNIQUE, NOT NULL, FOREIGN KEY or a
// trigger abort.
func IsConstraintViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrConstraint
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow,
			mysqlCheckViolated, mysqlSignalException, mysqlColumnCannotNull:
			return true
		}
	}
	return false
}

// IsTriggerAbort reports whether a trigger raised the error
func IsTriggerAbort(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintTrigger
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlSignalException
	}
	return false
}

// ViolationMessage returns the engine's message without driver decoration.
// For trigger aborts this is exactly the text passed to RAISE or SIGNAL.
func ViolationMessage(err error) string {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Error()
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Message
	}
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}
