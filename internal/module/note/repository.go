package note

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simp-lee/gonotes/internal/domain"
	"github.com/simp-lee/gonotes/internal/pkg"
	"github.com/simp-lee/gonotes/internal/query"
)

// noteRepository implements domain.NoteRepository using GORM.
type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository backed by the given GORM database.
func NewNoteRepository(db *gorm.DB) domain.NoteRepository {
	return &noteRepository{db: db}
}

// Create assigns a time-ordered UUIDv7 to the note and inserts it.
// IDs therefore sort in creation order.
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to generate note id", err)
	}
	note.ID = id.String()
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// GetByID retrieves a note by its primary key.
func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var note domain.Note
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		return nil, mapError(err)
	}
	return &note, nil
}

// Count returns the number of notes matching p.
func (r *noteRepository) Count(ctx context.Context, p query.Predicate) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Note{}).
		Scopes(pkg.Filter(domain.NoteSchema, p)).
		Count(&total).Error; err != nil {
		return 0, mapError(err)
	}
	return total, nil
}

// Find returns at most limit notes matching p in the given order, skipping
// the first skip of them.
func (r *noteRepository) Find(ctx context.Context, p query.Predicate, order []query.SortKey, skip, limit int) ([]domain.Note, error) {
	var notes []domain.Note
	if err := r.db.WithContext(ctx).Model(&domain.Note{}).
		Scopes(
			pkg.Filter(domain.NoteSchema, p),
			pkg.Sort(domain.NoteSchema, order),
			pkg.Paginate(skip, limit),
		).
		Find(&notes).Error; err != nil {
		return nil, mapError(err)
	}
	return notes, nil
}

// Update saves changes to an existing note.
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// Delete removes a note by ID.
func (r *noteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Note{})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message; the pure-Go SQLite driver does not translate them to
// gorm.ErrDuplicatedKey.
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
