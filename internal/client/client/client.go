package client

import (
	"context"

	"github.com/dmitrijs2005/kanbord/internal/client/models"
)

type Client interface {
	Close() error
	SetToken(token string)
	Health(ctx context.Context) error
	Register(ctx context.Context, firstName, lastName, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	ListNotes(ctx context.Context, filter models.NoteFilter) (*models.NotePage, error)
	GetNote(ctx context.Context, id string) (*models.Note, error)
	CreateNote(ctx context.Context, draft models.NoteDraft) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
	ExportNotes(ctx context.Context) (*models.Export, error)
}
