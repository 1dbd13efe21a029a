package domain

import (
	"context"
	"time"

	"github.com/simp-lee/gonotes/internal/query"
)

// Note is a single note owned by one user.
// ID is assigned by the store on creation and UserID never changes afterwards.
type Note struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Priority    string    `gorm:"size:50;not null" json:"priority"`
	Status      string    `gorm:"size:50;not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Note field names accepted in sortBy and filterColumns.
const (
	NoteFieldID          = "Id"
	NoteFieldUserID      = "UserId"
	NoteFieldTitle       = "Title"
	NoteFieldDescription = "Description"
	NoteFieldPriority    = "Priority"
	NoteFieldStatus      = "Status"
)

// NoteSchema lists the note fields the listing endpoint can sort and filter on.
// Keep it in sync with Note.
var NoteSchema = query.NewSchema(
	query.Field{Name: NoteFieldID, Column: "id", Identity: true},
	query.Field{Name: NoteFieldUserID, Column: "user_id", Owner: true},
	query.Field{Name: NoteFieldTitle, Column: "title", Searchable: true},
	query.Field{Name: NoteFieldDescription, Column: "description", Searchable: true},
	query.Field{Name: NoteFieldPriority, Column: "priority", Searchable: true},
	query.Field{Name: NoteFieldStatus, Column: "status", Searchable: true},
)

// FieldValue returns the value of a NoteSchema field.
func (n Note) FieldValue(name string) (any, bool) {
	switch name {
	case NoteFieldID:
		return n.ID, true
	case NoteFieldUserID:
		return n.UserID, true
	case NoteFieldTitle:
		return n.Title, true
	case NoteFieldDescription:
		return n.Description, true
	case NoteFieldPriority:
		return n.Priority, true
	case NoteFieldStatus:
		return n.Status, true
	default:
		return nil, false
	}
}

// NoteContent holds the client-editable fields of a note.
type NoteContent struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

// NoteRepository defines the data access interface for notes.
// List operations go through the embedded query.Store.
type NoteRepository interface {
	query.Store[Note]
	Create(ctx context.Context, note *Note) error
	GetByID(ctx context.Context, id string) (*Note, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id string) error
}

// NoteService defines the business logic interface for notes. Every operation
// is scoped to ownerID; notes of other owners are reported as not found.
type NoteService interface {
	CreateNote(ctx context.Context, ownerID uint, content NoteContent) (*Note, error)
	GetNote(ctx context.Context, ownerID uint, id string) (*Note, error)
	ListNotes(ctx context.Context, ownerID uint, req query.Request) (*query.Page[Note], error)
	UpdateNote(ctx context.Context, ownerID uint, id string, content NoteContent) (*Note, error)
	DeleteNote(ctx context.Context, ownerID uint, id string) error
}
