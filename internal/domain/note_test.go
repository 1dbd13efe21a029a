package domain

import (
	"reflect"
	"testing"

	"github.com/simp-lee/gonotes/internal/query"
)

func TestNoteSchema_Fields(t *testing.T) {
	wantFields := []string{NoteFieldID, NoteFieldUserID, NoteFieldTitle, NoteFieldDescription, NoteFieldPriority, NoteFieldStatus}
	if got := NoteSchema.Fields(); !reflect.DeepEqual(got, wantFields) {
		t.Errorf("Fields() = %v, want %v", got, wantFields)
	}

	wantSearch := []string{NoteFieldTitle, NoteFieldDescription, NoteFieldPriority, NoteFieldStatus}
	if got := NoteSchema.SearchFields(); !reflect.DeepEqual(got, wantSearch) {
		t.Errorf("SearchFields() = %v, want %v", got, wantSearch)
	}

	if NoteSchema.OwnerField() != NoteFieldUserID {
		t.Errorf("OwnerField() = %q, want %q", NoteSchema.OwnerField(), NoteFieldUserID)
	}
	if NoteSchema.IdentityField() != NoteFieldID {
		t.Errorf("IdentityField() = %q, want %q", NoteSchema.IdentityField(), NoteFieldID)
	}
}

func TestNoteSchema_EveryNoteFieldIsSelectable(t *testing.T) {
	for _, name := range []string{NoteFieldID, NoteFieldUserID, NoteFieldTitle, NoteFieldDescription, NoteFieldPriority, NoteFieldStatus} {
		if !NoteSchema.IsKnownField(name) {
			t.Errorf("IsKnownField(%q) = false, want true", name)
		}
	}
	if col, ok := NoteSchema.Column(NoteFieldUserID); !ok || col != "user_id" {
		t.Errorf("Column(UserId) = %q, %v; want user_id, true", col, ok)
	}
	for _, name := range []string{"title", "TITLE", "Color", "CreatedAt", ""} {
		if NoteSchema.IsKnownField(name) {
			t.Errorf("IsKnownField(%q) = true, want false", name)
		}
	}
}

// Every schema field must resolve through FieldValue, or in-memory stores
// would silently drop matches.
func TestNote_FieldValueCoversSchema(t *testing.T) {
	n := Note{
		ID:          "0190f2a0-0000-7000-8000-000000000001",
		UserID:      7,
		Title:       "Travel Plans",
		Description: "Book flights",
		Priority:    "High",
		Status:      "Open",
	}

	want := map[string]any{
		NoteFieldID:          n.ID,
		NoteFieldUserID:      uint(7),
		NoteFieldTitle:       "Travel Plans",
		NoteFieldDescription: "Book flights",
		NoteFieldPriority:    "High",
		NoteFieldStatus:      "Open",
	}
	for name, wantValue := range want {
		got, ok := n.FieldValue(name)
		if !ok {
			t.Errorf("FieldValue(%q) not found", name)
			continue
		}
		if got != wantValue {
			t.Errorf("FieldValue(%q) = %v, want %v", name, got, wantValue)
		}
	}

	if _, ok := n.FieldValue("Color"); ok {
		t.Error("FieldValue(Color) should report false")
	}
}

func TestNote_MatchesOwnerScope(t *testing.T) {
	n := Note{UserID: 3, Title: "Dinner Plan"}

	if !query.Match(query.Equals{Field: NoteFieldUserID, Value: uint(3)}, n) {
		t.Error("expected owner 3 to match")
	}
	if query.Match(query.Equals{Field: NoteFieldUserID, Value: uint(4)}, n) {
		t.Error("expected owner 4 not to match")
	}
	if !query.Match(query.Contains{Field: NoteFieldTitle, Term: "PLAN"}, n) {
		t.Error("expected case-insensitive title match")
	}
}
