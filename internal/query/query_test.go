package query

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// testNote is a minimal entity used to exercise the engine without a database.
type testNote struct {
	ID          string
	UserID      uint
	Title       string
	Description string
	Priority    string
	Status      string
}

func (n testNote) FieldValue(name string) (any, bool) {
	switch name {
	case "Id":
		return n.ID, true
	case "UserId":
		return n.UserID, true
	case "Title":
		return n.Title, true
	case "Description":
		return n.Description, true
	case "Priority":
		return n.Priority, true
	case "Status":
		return n.Status, true
	}
	return nil, false
}

var testSchema = NewSchema(
	Field{Name: "Id", Column: "id", Identity: true},
	Field{Name: "UserId", Column: "user_id", Owner: true},
	Field{Name: "Title", Column: "title", Searchable: true},
	Field{Name: "Description", Column: "description", Searchable: true},
	Field{Name: "Priority", Column: "priority", Searchable: true},
	Field{Name: "Status", Column: "status", Searchable: true},
)

// memStore is an in-memory Store used by the executor tests.
type memStore struct {
	notes []testNote

	countCalls int
	findCalls  int
	lastSkip   int
	lastLimit  int
	lastSort   []SortKey
	lastPred   Predicate

	countErr error
	findErr  error
}

func (m *memStore) matching(p Predicate) []testNote {
	var out []testNote
	for _, n := range m.notes {
		if Match(p, n) {
			out = append(out, n)
		}
	}
	return out
}

func (m *memStore) Count(_ context.Context, p Predicate) (int64, error) {
	m.countCalls++
	m.lastPred = p
	if m.countErr != nil {
		return 0, m.countErr
	}
	return int64(len(m.matching(p))), nil
}

func (m *memStore) Find(_ context.Context, p Predicate, sort []SortKey, skip, limit int) ([]testNote, error) {
	m.findCalls++
	m.lastSkip, m.lastLimit, m.lastSort = skip, limit, sort
	if m.findErr != nil {
		return nil, m.findErr
	}

	items := m.matching(p)
	slices.SortStableFunc(items, func(a, b testNote) int {
		for _, key := range sort {
			av, _ := a.FieldValue(key.Field)
			bv, _ := b.FieldValue(key.Field)
			c := strings.Compare(fmt.Sprint(av), fmt.Sprint(bv))
			if key.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	if skip >= len(items) {
		return nil, nil
	}
	items = items[skip:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// scenarioNotes returns the two notes of owner 1 used across scenario tests,
// plus one note belonging to another owner.
func scenarioNotes() []testNote {
	return []testNote{
		{ID: "01", UserID: 1, Title: "Travel Plans", Description: "Book flights and a hotel", Priority: "LOW", Status: "Pending"},
		{ID: "02", UserID: 1, Title: "Dinner Plan", Description: "Reserve a table for four", Priority: "HIGH", Status: "Done"},
		{ID: "03", UserID: 2, Title: "Other owner", Description: "reserve nothing", Priority: "HIGH", Status: "Pending"},
	}
}

func titles(notes []testNote) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
