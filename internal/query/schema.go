// Package query interprets client-supplied listing parameters (paging, search,
// sort, column filters) and turns them into a validated, store-agnostic query:
// a predicate, an ordering and a skip/limit window, executed as a count plus a
// page fetch against a Store.
package query

import "fmt"

// Field declares one entity field the query engine knows about.
type Field struct {
	// Name is the client-facing field name, matched case-sensitively.
	Name string
	// Column is the storage column the field maps to.
	Column string
	// Searchable fields take part in the free-text search fragment.
	Searchable bool
	// Owner marks the field that scopes records to their owner. Clients may
	// sort and filter on it, but the owner scope is always applied as well.
	Owner bool
	// Identity marks the unique id field used as the final sort tiebreak.
	Identity bool
}

// Schema is a hand-maintained descriptor of the fields of one entity.
// It is immutable once built and safe for concurrent use.
type Schema struct {
	fields   map[string]Field
	names    []string
	search   []string
	owner    string
	identity string
}

// NewSchema builds a Schema from explicit field declarations.
// It panics on duplicate names or when the owner or identity field is missing,
// since schemas are declared once at package initialization.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: make(map[string]Field, len(fields))}
	for _, f := range fields {
		if f.Name == "" || f.Column == "" {
			panic("query.NewSchema: field name and column must not be empty")
		}
		if _, dup := s.fields[f.Name]; dup {
			panic(fmt.Sprintf("query.NewSchema: duplicate field %q", f.Name))
		}
		s.fields[f.Name] = f

		switch {
		case f.Owner:
			if s.owner != "" {
				panic("query.NewSchema: more than one owner field")
			}
			s.owner = f.Name
		case f.Identity:
			if s.identity != "" {
				panic("query.NewSchema: more than one identity field")
			}
			s.identity = f.Name
		}

		s.names = append(s.names, f.Name)
		if f.Searchable {
			s.search = append(s.search, f.Name)
		}
	}
	if s.owner == "" {
		panic("query.NewSchema: owner field is required")
	}
	if s.identity == "" {
		panic("query.NewSchema: identity field is required")
	}
	return s
}

// IsKnownField reports whether name is a field clients may sort or filter on.
func (s *Schema) IsKnownField(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Column returns the storage column for a declared field.
func (s *Schema) Column(name string) (string, bool) {
	f, ok := s.fields[name]
	if !ok {
		return "", false
	}
	return f.Column, true
}

// Fields returns the declared field names in declaration order.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.names...)
}

// SearchFields returns the fields matched by the free-text search term.
func (s *Schema) SearchFields() []string {
	return append([]string(nil), s.search...)
}

// OwnerField returns the name of the ownership field.
func (s *Schema) OwnerField() string { return s.owner }

// IdentityField returns the name of the identity field.
func (s *Schema) IdentityField() string { return s.identity }
