package query

import (
	"fmt"
	"strings"
)

// Predicate is a condition over entity fields. Implementations form a closed
// set: Equals, Contains, AllOf and AnyOf.
type Predicate interface {
	predicate()
}

// Equals matches records whose Field equals Value exactly.
type Equals struct {
	Field string
	Value any
}

// Contains matches records whose Field contains Term as a case-insensitive
// substring. An empty Term matches every record.
type Contains struct {
	Field string
	Term  string
}

// AllOf matches records satisfying every child predicate.
// An empty AllOf matches everything.
type AllOf []Predicate

// AnyOf matches records satisfying at least one child predicate.
// An empty AnyOf matches nothing.
type AnyOf []Predicate

func (Equals) predicate()   {}
func (Contains) predicate() {}
func (AllOf) predicate()    {}
func (AnyOf) predicate()    {}

// BuildPredicate composes the owner scope, the free-text search and the
// column filters of v into a single conjunction.
func BuildPredicate(schema *Schema, owner any, v Validated) Predicate {
	all := AllOf{Equals{Field: schema.OwnerField(), Value: owner}}

	if v.searchTerm != "" {
		fields := schema.SearchFields()
		search := make(AnyOf, 0, len(fields))
		for _, field := range fields {
			search = append(search, Contains{Field: field, Term: v.searchTerm})
		}
		all = append(all, search)
	}

	for _, f := range v.filters {
		all = append(all, Contains{Field: f.Field, Term: f.Term})
	}

	return all
}

// Record exposes field values of an entity for in-memory evaluation.
type Record interface {
	FieldValue(name string) (any, bool)
}

// Match evaluates p against rec. Unknown fields never match.
func Match(p Predicate, rec Record) bool {
	switch p := p.(type) {
	case Equals:
		v, ok := rec.FieldValue(p.Field)
		return ok && v == p.Value
	case Contains:
		v, ok := rec.FieldValue(p.Field)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(p.Term))
	case AllOf:
		for _, child := range p {
			if !Match(child, rec) {
				return false
			}
		}
		return true
	case AnyOf:
		for _, child := range p {
			if Match(child, rec) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
