package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/dmitrijs2005/kanbord/internal/dbx"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
	notesrepo "github.com/dmitrijs2005/kanbord/internal/server/repositories/notes"
	usersrepo "github.com/dmitrijs2005/kanbord/internal/server/repositories/users"
	"github.com/google/uuid"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	err     error
	created []*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	f.byID[cp.ID] = &cp
	f.created = append(f.created, &cp)
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeNotesRepo keeps notes in a map and applies the same owner scoping as
// the SQL repository.
type fakeNotesRepo struct {
	mu    sync.Mutex
	notes map[string]*models.Note
	err   error

	lastPage   models.PageRequest
	lastFilter models.NoteFilter
}

func newFakeNotesRepo() *fakeNotesRepo {
	return &fakeNotesRepo{notes: map[string]*models.Note{}}
}

func cloneNote(n *models.Note) *models.Note {
	cp := *n
	cp.Tags = append([]string{}, n.Tags...)
	if n.DueDate != nil {
		d := *n.DueDate
		cp.DueDate = &d
	}
	return &cp
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notes[n.ID] = cloneNote(n)
	return nil
}

func (f *fakeNotesRepo) Get(ctx context.Context, id, userID string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return cloneNote(n), nil
}

func (f *fakeNotesRepo) GetForUpdate(ctx context.Context, id, userID string) (*models.Note, error) {
	return f.Get(ctx, id, userID)
}

func (f *fakeNotesRepo) matching(userID string, filter models.NoteFilter) []*models.Note {
	var out []*models.Note
	for _, n := range f.notes {
		if n.UserID != userID {
			continue
		}
		if filter.Category != nil && n.Category != *filter.Category {
			continue
		}
		if filter.Priority != nil && n.Priority != *filter.Priority {
			continue
		}
		if filter.IsCompleted != nil && n.IsCompleted != *filter.IsCompleted {
			continue
		}
		out = append(out, cloneNote(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeNotesRepo) List(ctx context.Context, userID string, filter models.NoteFilter, page models.PageRequest) ([]*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.lastPage, f.lastFilter = page, filter

	all := f.matching(userID, filter)
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return append([]*models.Note{}, all[start:end]...), nil
}

func (f *fakeNotesRepo) Count(ctx context.Context, userID string, filter models.NoteFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return len(f.matching(userID, filter)), nil
}

func (f *fakeNotesRepo) ListAll(ctx context.Context, userID string) ([]*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.matching(userID, models.NoteFilter{}), nil
}

func (f *fakeNotesRepo) Update(ctx context.Context, n *models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cur, ok := f.notes[n.ID]
	if !ok || cur.UserID != n.UserID {
		return common.ErrorNotFound
	}
	f.notes[n.ID] = cloneNote(n)
	return nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.notes, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), n: newFakeNotesRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository       { return m.n }
