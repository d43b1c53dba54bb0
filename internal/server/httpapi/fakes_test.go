package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/dmitrijs2005/kanbord/internal/logging"
	"github.com/dmitrijs2005/kanbord/internal/server/config"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
	"github.com/dmitrijs2005/kanbord/internal/server/validation"
)

const (
	goodToken = "good-token"
	aliceID   = "11111111-1111-4111-8111-111111111111"
	noteID    = "8f14e45f-ceea-467e-9d1b-3f2d9c1a7b10"
)

var alice = &models.User{ID: aliceID, Email: "alice@example.com", FirstName: "Alice", LastName: "Liddell"}

type fakeUsers struct {
	session  *models.Session
	err      error
	lastReg  models.RegisterInput
	lastAuth string
}

func (f *fakeUsers) Register(ctx context.Context, in models.RegisterInput) (*models.Session, error) {
	f.lastReg = in
	return f.session, f.err
}

func (f *fakeUsers) Login(ctx context.Context, in models.LoginInput) (*models.Session, error) {
	return f.session, f.err
}

func (f *fakeUsers) Authenticate(ctx context.Context, token string) (*models.User, error) {
	f.lastAuth = token
	switch token {
	case goodToken:
		return alice, nil
	case "explode":
		return nil, errors.New("db down")
	default:
		return nil, common.ErrorUnauthorized
	}
}

type fakeNotes struct {
	called   bool
	ownerID  string
	id       string
	input    models.NoteInput
	filter   models.NoteFilter
	page     models.PageRequest
	note     *models.Note
	notePage *models.NotePage
	err      error
}

func (f *fakeNotes) Create(ctx context.Context, ownerID string, in models.NoteInput) (*models.Note, error) {
	f.called, f.ownerID, f.input = true, ownerID, in
	return f.note, f.err
}

func (f *fakeNotes) List(ctx context.Context, ownerID string, filter models.NoteFilter, page models.PageRequest) (*models.NotePage, error) {
	f.called, f.ownerID, f.filter, f.page = true, ownerID, filter, page
	return f.notePage, f.err
}

func (f *fakeNotes) Get(ctx context.Context, ownerID, id string) (*models.Note, error) {
	f.called, f.ownerID, f.id = true, ownerID, id
	return f.note, f.err
}

func (f *fakeNotes) Update(ctx context.Context, ownerID, id string, in models.NoteInput) (*models.Note, error) {
	f.called, f.ownerID, f.id, f.input = true, ownerID, id, in
	return f.note, f.err
}

func (f *fakeNotes) Delete(ctx context.Context, ownerID, id string) error {
	f.called, f.ownerID, f.id = true, ownerID, id
	return f.err
}

type fakeExports struct {
	out *models.NoteExport
	err error
}

func (f *fakeExports) Export(ctx context.Context, ownerID string) (*models.NoteExport, error) {
	return f.out, f.err
}

type testEnv struct {
	srv     *HTTPServer
	users   *fakeUsers
	notes   *fakeNotes
	exports *fakeExports
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.RateLimitRPS = 1000
	cfg.RateLimitBurst = 1000
	return cfg
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	env := &testEnv{users: &fakeUsers{}, notes: &fakeNotes{}, exports: &fakeExports{}}
	l := logging.NewLogrusLogger(io.Discard, "error")
	h := NewHandler(env.users, env.notes, env.exports, validation.New(), l)
	h.now = func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }
	env.srv = NewHTTPServer(cfg, l, h)
	return env
}

func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func sampleNote() *models.Note {
	ts := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	return &models.Note{
		ID:        noteID,
		UserID:    aliceID,
		Title:     "Buy milk",
		Content:   "2 litres",
		Category:  models.CategoryUnassigned,
		Priority:  models.PriorityMedium,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}
