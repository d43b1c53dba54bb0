package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/dmitrijs2005/kanbord/internal/dbx"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
	"github.com/dmitrijs2005/kanbord/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/kanbord/internal/server/validation"
	"github.com/google/uuid"
)

// NoteService is the owner-scoped note access layer. Every method takes the
// caller's user id explicitly and never touches notes of other users.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
	now         func() time.Time
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, v *validation.Validator) *NoteService {
	return &NoteService{
		db:          db,
		repomanager: m,
		validator:   v,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create validates in and stores a new note owned by ownerID. Category
// defaults to Unassigned and priority to Medium. New notes always start
// incomplete; isCompleted is only honoured by Update.
func (s *NoteService) Create(ctx context.Context, ownerID string, in models.NoteInput) (*models.Note, error) {
	in.IsCompleted = nil
	in.Normalize()
	if err := s.validator.Note(in, true).Err(); err != nil {
		return nil, err
	}

	now := s.now()
	note := &models.Note{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Category:  models.CategoryUnassigned,
		Priority:  models.PriorityMedium,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(note, in)

	if err := s.repomanager.Notes(s.db).Create(ctx, note); err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return note, nil
}

// List returns one page of the owner's notes, newest first, with the
// pagination summary computed from the filtered total.
func (s *NoteService) List(ctx context.Context, ownerID string, filter models.NoteFilter, page models.PageRequest) (*models.NotePage, error) {
	if err := s.validator.Page(page).Err(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Notes(s.db)

	total, err := repo.Count(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting notes: %w", err)
	}

	notes, err := repo.List(ctx, ownerID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	return &models.NotePage{Notes: notes, Pagination: models.NewPagination(page, total)}, nil
}

func (s *NoteService) Get(ctx context.Context, ownerID, id string) (*models.Note, error) {
	if !isNoteID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Notes(s.db).Get(ctx, id, ownerID)
}

// Update applies the fields present in in. The row is locked for the
// duration of the read-modify-write.
func (s *NoteService) Update(ctx context.Context, ownerID, id string, in models.NoteInput) (*models.Note, error) {
	if !isNoteID(id) {
		return nil, common.ErrorNotFound
	}

	in.Normalize()
	if err := s.validator.Note(in, false).Err(); err != nil {
		return nil, err
	}

	var note *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)

		n, err := repo.GetForUpdate(ctx, id, ownerID)
		if err != nil {
			return err
		}

		applyInput(n, in)
		n.UpdatedAt = s.now()

		if err := repo.Update(ctx, n); err != nil {
			return err
		}
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID, id string) error {
	if !isNoteID(id) {
		return common.ErrorNotFound
	}
	return s.repomanager.Notes(s.db).Delete(ctx, id, ownerID)
}

// applyInput copies validated fields onto n. Nil fields are left alone.
func applyInput(n *models.Note, in models.NoteInput) {
	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Content != nil {
		n.Content = *in.Content
	}
	if in.Category != nil {
		if c, ok := models.ParseCategory(*in.Category); ok {
			n.Category = c
		}
	}
	if in.Priority != nil {
		if p, ok := models.ParsePriority(*in.Priority); ok {
			n.Priority = p
		}
	}
	switch {
	case in.ClearDueDate:
		n.DueDate = nil
	case in.DueDate != nil:
		if d, ok := models.ParseDueDate(*in.DueDate); ok {
			n.DueDate = &d
		}
	}
	if in.Tags != nil {
		n.Tags = in.Tags
	}
	if in.IsCompleted != nil {
		n.IsCompleted = *in.IsCompleted
	}
}

func isNoteID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
