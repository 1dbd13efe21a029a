package pkg

import (
	"database/sql/driver"
	"strconv"
	"strings"

	sqlite "github.com/glebarez/go-sqlite"
)

// Dialector names with dedicated case-insensitive matching.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// UnicodeLowerFunc is a SQLite scalar function that lower-cases text with
// Go's Unicode case mapping, the same folding query.Match applies.
const UnicodeLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(UnicodeLowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return v, nil
	}
}
