package note

import "github.com/simp-lee/gonotes/internal/domain"

// CreateNoteRequest represents the input for creating a note.
type CreateNoteRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=200"`
	Description string `json:"description" form:"description" binding:"required"`
	Priority    string `json:"priority" form:"priority" binding:"required,max=50"`
	Status      string `json:"status" form:"status" binding:"required,max=50"`
}

// UpdateNoteRequest represents the input for replacing a note's content.
type UpdateNoteRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=200"`
	Description string `json:"description" form:"description" binding:"required"`
	Priority    string `json:"priority" form:"priority" binding:"required,max=50"`
	Status      string `json:"status" form:"status" binding:"required,max=50"`
}

func (r CreateNoteRequest) content() domain.NoteContent {
	return domain.NoteContent(r)
}

func (r UpdateNoteRequest) content() domain.NoteContent {
	return domain.NoteContent(r)
}
