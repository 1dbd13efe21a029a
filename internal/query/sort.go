package query

// SortKey orders results by one field.
type SortKey struct {
	Field      string
	Descending bool
}

// ResolveSort returns the ordering for v. The identity field is always the
// last key (ascending), so pages are stable across calls even when the
// requested column has duplicate values.
func ResolveSort(schema *Schema, v Validated) []SortKey {
	id := schema.IdentityField()
	if v.sortBy == "" {
		return []SortKey{{Field: id}}
	}

	keys := []SortKey{{Field: v.sortBy, Descending: v.descending}}
	if v.sortBy != id {
		keys = append(keys, SortKey{Field: id})
	}
	return keys
}
