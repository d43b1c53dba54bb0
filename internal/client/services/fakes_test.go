package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	require.NoError(t, err)
	return v
}

type updateCall struct {
	id    string
	draft models.NoteDraft
}

// fakeClient implements client.Client for service tests. Notes are served
// in pages of the requested size from the notes slice.
type fakeClient struct {
	token string

	session *models.Session
	authErr error

	me    *models.User
	meErr error

	healthErr error

	notes   []*models.Note
	listErr error
	lists   []models.NoteFilter

	note    *models.Note
	noteErr error
	updates []updateCall
	created []models.NoteDraft
	deleted []string

	export    *models.Export
	exportErr error

	registered []string
	closed     bool
}

func (f *fakeClient) Close() error { f.closed = true; return nil }
func (f *fakeClient) SetToken(token string) { f.token = token }
func (f *fakeClient) Health(context.Context) error { return f.healthErr }

func (f *fakeClient) Register(_ context.Context, firstName, lastName, email, _ string) (*models.Session, error) {
	f.registered = append(f.registered, firstName, lastName, email)
	return f.session, f.authErr
}

func (f *fakeClient) Login(context.Context, string, string) (*models.Session, error) {
	return f.session, f.authErr
}

func (f *fakeClient) Me(context.Context) (*models.User, error) { return f.me, f.meErr }

func (f *fakeClient) ListNotes(_ context.Context, filter models.NoteFilter) (*models.NotePage, error) {
	f.lists = append(f.lists, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 10
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	start := (page - 1) * limit
	end := start + limit
	if start > len(f.notes) {
		start = len(f.notes)
	}
	if end > len(f.notes) {
		end = len(f.notes)
	}
	return &models.NotePage{
		Notes: f.notes[start:end],
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalNotes:  len(f.notes),
			HasNext:     end < len(f.notes),
			HasPrev:     page > 1,
		},
	}, nil
}

func (f *fakeClient) GetNote(context.Context, string) (*models.Note, error) {
	return f.note, f.noteErr
}

func (f *fakeClient) CreateNote(_ context.Context, d models.NoteDraft) (*models.Note, error) {
	f.created = append(f.created, d)
	return f.note, f.noteErr
}

func (f *fakeClient) UpdateNote(_ context.Context, id string, d models.NoteDraft) (*models.Note, error) {
	f.updates = append(f.updates, updateCall{id: id, draft: d})
	return f.note, f.noteErr
}

func (f *fakeClient) DeleteNote(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.noteErr
}

func (f *fakeClient) ExportNotes(context.Context) (*models.Export, error) {
	return f.export, f.exportErr
}
