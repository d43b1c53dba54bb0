package notes

import (
	"context"

	"github.com/dmitrijs2005/kanbord/internal/server/models"
)

// Repository stores notes. Every read and write is scoped by owner id; a
// note owned by someone else behaves exactly like a missing one and yields
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, note *models.Note) error
	Get(ctx context.Context, id, userID string) (*models.Note, error)
	GetForUpdate(ctx context.Context, id, userID string) (*models.Note, error)
	List(ctx context.Context, userID string, filter models.NoteFilter, page models.PageRequest) ([]*models.Note, error)
	Count(ctx context.Context, userID string, filter models.NoteFilter) (int, error)
	ListAll(ctx context.Context, userID string) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id, userID string) error
}
