package pkg

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/gonotes/internal/domain"
	"github.com/simp-lee/gonotes/internal/query"
)

// likeEscaper escapes LIKE wildcards so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BindQueryRequest extracts listing parameters (pageNumber, pageSize, searchTerm,
// sortBy, sortOrder, filterColumns, filterQueries) from the query string.
// Absent parameters keep their defaults; semantic checks are left to
// query.Request.Validate.
func BindQueryRequest(c *gin.Context) (query.Request, error) {
	req := query.NewRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, domain.NewValidationError("invalid query parameters", []string{err.Error()}, err)
	}
	return req, nil
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT.
func Paginate(skip, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(skip).Limit(limit)
	}
}

// Sort returns a GORM scope that applies ORDER BY for each key in order.
// Keys are resolved to columns through schema; an unknown field aborts the query.
func Sort(schema *query.Schema, keys []query.SortKey) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, key := range keys {
			column, ok := schema.Column(key.Field)
			if !ok {
				_ = db.AddError(fmt.Errorf("sort: unknown field %q", key.Field))
				return db
			}
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Name: column},
				Desc:   key.Descending,
			})
		}
		return db
	}
}

// Filter returns a GORM scope that restricts rows to those matching p.
// Field names are resolved to columns through schema, so only declared
// column names reach SQL; values are always bound as parameters.
func Filter(schema *query.Schema, p query.Predicate) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		expr, err := Expression(db.Dialector.Name(), schema, p)
		if err != nil {
			_ = db.AddError(err)
			return db
		}
		return db.Clauses(clause.Where{Exprs: []clause.Expression{expr}})
	}
}

// Expression translates a predicate into a GORM clause expression for the
// named dialect. Contains becomes a case-insensitive LIKE with escaped
// wildcards.
func Expression(dialect string, schema *query.Schema, p query.Predicate) (clause.Expression, error) {
	switch p := p.(type) {
	case query.Equals:
		column, ok := schema.Column(p.Field)
		if !ok {
			return nil, fmt.Errorf("filter: unknown field %q", p.Field)
		}
		return clause.Eq{Column: clause.Column{Name: column}, Value: p.Value}, nil

	case query.Contains:
		column, ok := schema.Column(p.Field)
		if !ok {
			return nil, fmt.Errorf("filter: unknown field %q", p.Field)
		}
		return containsExpr(dialect, column, p.Term), nil

	case query.AllOf:
		if len(p) == 0 {
			return clause.Expr{SQL: "1 = 1"}, nil
		}
		exprs, err := expressions(dialect, schema, p)
		if err != nil {
			return nil, err
		}
		return clause.And(exprs...), nil

	case query.AnyOf:
		if len(p) == 0 {
			return clause.Expr{SQL: "1 = 0"}, nil
		}
		exprs, err := expressions(dialect, schema, p)
		if err != nil {
			return nil, err
		}
		return clause.Or(exprs...), nil

	default:
		return nil, fmt.Errorf("filter: unsupported predicate %T", p)
	}
}

// containsExpr matches column against term ignoring case. SQLite's built-in
// LOWER only folds ASCII, so the sqlite dialect goes through unicode_lower.
// Postgres casts to text so the integer owner column can be filtered too.
func containsExpr(dialect, column, term string) clause.Expression {
	col := clause.Column{Name: column}
	switch dialect {
	case DialectPostgres:
		return clause.Expr{
			SQL:  `CAST(? AS TEXT) ILIKE ? ESCAPE '\'`,
			Vars: []any{col, "%" + likeEscaper.Replace(term) + "%"},
		}
	case DialectSQLite:
		return clause.Expr{
			SQL:  UnicodeLowerFunc + `(?) LIKE ? ESCAPE '\'`,
			Vars: []any{col, "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"},
		}
	default:
		return clause.Expr{
			SQL:  `LOWER(?) LIKE ? ESCAPE '\'`,
			Vars: []any{col, "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"},
		}
	}
}

func expressions(dialect string, schema *query.Schema, preds []query.Predicate) ([]clause.Expression, error) {
	exprs := make([]clause.Expression, 0, len(preds))
	for _, child := range preds {
		expr, err := Expression(dialect, schema, child)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}
