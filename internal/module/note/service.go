package note

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/simp-lee/gonotes/internal/domain"
	"github.com/simp-lee/gonotes/internal/query"
)

// ErrOwnerNotFound is returned when listing notes for a user that does not exist.
var ErrOwnerNotFound = domain.NewAppError(domain.CodeNotFound, "user not found", nil)

// ErrNoteNotFound is returned for notes that do not exist or belong to another user.
var ErrNoteNotFound = domain.NewAppError(domain.CodeNotFound, "note not found", nil)

// noteService implements domain.NoteService.
type noteService struct {
	repo     domain.NoteRepository
	users    domain.UserRepository
	executor *query.Executor[domain.Note]
}

// NewNoteService creates a new NoteService. users is consulted to confirm
// that a listing owner exists.
func NewNoteService(repo domain.NoteRepository, users domain.UserRepository) domain.NoteService {
	return &noteService{
		repo:     repo,
		users:    users,
		executor: query.NewExecutor[domain.Note](domain.NoteSchema, repo),
	}
}

// CreateNote validates content and stores a new note owned by ownerID.
func (s *noteService) CreateNote(ctx context.Context, ownerID uint, content domain.NoteContent) (*domain.Note, error) {
	content = trimContent(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	note := &domain.Note{
		UserID:      ownerID,
		Title:       content.Title,
		Description: content.Description,
		Priority:    content.Priority,
		Status:      content.Status,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetNote returns the note with id if it belongs to ownerID.
func (s *noteService) GetNote(ctx context.Context, ownerID uint, id string) (*domain.Note, error) {
	return s.owned(ctx, ownerID, id)
}

// ListNotes validates req, confirms the owner exists, and returns one page of
// the owner's notes together with the total number of matches.
func (s *noteService) ListNotes(ctx context.Context, ownerID uint, req query.Request) (*query.Page[domain.Note], error) {
	v, err := req.Validate(domain.NoteSchema)
	if err != nil {
		var ve *query.ValidationError
		if errors.As(err, &ve) {
			return nil, domain.NewValidationError("invalid query parameters", ve.Violations, err)
		}
		return nil, domain.NewAppError(domain.CodeInternal, "validate query parameters", err)
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if domain.IsNotFound(err) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	return s.executor.Execute(ctx, ownerID, v)
}

// UpdateNote replaces the content of a note owned by ownerID.
func (s *noteService) UpdateNote(ctx context.Context, ownerID uint, id string, content domain.NoteContent) (*domain.Note, error) {
	content = trimContent(content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	note, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	note.Title = content.Title
	note.Description = content.Description
	note.Priority = content.Priority
	note.Status = content.Status

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note owned by ownerID.
func (s *noteService) DeleteNote(ctx context.Context, ownerID uint, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return ErrNoteNotFound
		}
		return err
	}
	return nil
}

// owned loads a note and hides notes of other owners behind ErrNoteNotFound.
func (s *noteService) owned(ctx context.Context, ownerID uint, id string) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if note.UserID != ownerID {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func trimContent(c domain.NoteContent) domain.NoteContent {
	return domain.NoteContent{
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		Priority:    strings.TrimSpace(c.Priority),
		Status:      strings.TrimSpace(c.Status),
	}
}

// validateContent checks that every field is present and within its column size.
func validateContent(c domain.NoteContent) error {
	switch {
	case c.Title == "":
		return domain.NewAppError(domain.CodeValidation, "title is required", nil)
	case utf8.RuneCountInString(c.Title) > 200:
		return domain.NewAppError(domain.CodeValidation, "title must be at most 200 characters", nil)
	case c.Description == "":
		return domain.NewAppError(domain.CodeValidation, "description is required", nil)
	case c.Priority == "":
		return domain.NewAppError(domain.CodeValidation, "priority is required", nil)
	case utf8.RuneCountInString(c.Priority) > 50:
		return domain.NewAppError(domain.CodeValidation, "priority must be at most 50 characters", nil)
	case c.Status == "":
		return domain.NewAppError(domain.CodeValidation, "status is required", nil)
	case utf8.RuneCountInString(c.Status) > 50:
		return domain.NewAppError(domain.CodeValidation, "status must be at most 50 characters", nil)
	}
	return nil
}
