package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/kanbord/internal/client/client"
	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/dmitrijs2005/kanbord/internal/filex"
	"github.com/dmitrijs2005/kanbord/internal/netx"
)

// ErrUnknownColumn is returned when a column name or number does not match
// any board column.
var ErrUnknownColumn = errors.New("unknown column")

// boardPageSize is the largest page the server hands out.
const boardPageSize = 100

var (
	downloadExport = netx.DownloadPresignedURL
	writeExport    = filex.WriteInDir
)

type BoardService interface {
	Board(ctx context.Context) ([]models.Column, error)
	List(ctx context.Context, filter models.NoteFilter) (*models.NotePage, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, draft models.NoteDraft) (*models.Note, error)
	Edit(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error)
	Move(ctx context.Context, id, column string) (*models.Note, error)
	Toggle(ctx context.Context, id string) (*models.Note, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, dir string) (string, *models.Export, error)
}

type boardService struct {
	client client.Client
}

func NewBoardService(c client.Client) BoardService {
	return &boardService{client: c}
}

// Board fetches every note and groups it into the fixed column order.
// Notes keep the server's newest-first order inside a column.
func (s *boardService) Board(ctx context.Context) ([]models.Column, error) {
	cols := make([]models.Column, len(models.Columns))
	index := make(map[string]int, len(models.Columns))
	for i, name := range models.Columns {
		cols[i] = models.Column{Name: name, Notes: []*models.Note{}}
		index[name] = i
	}

	for page := 1; ; page++ {
		p, err := s.client.ListNotes(ctx, models.NoteFilter{Page: page, Limit: boardPageSize})
		if err != nil {
			return nil, err
		}
		for _, n := range p.Notes {
			i, ok := index[n.Category]
			if !ok {
				i = 0
			}
			cols[i].Notes = append(cols[i].Notes, n)
		}
		if !p.Pagination.HasNext {
			break
		}
	}
	return cols, nil
}

func (s *boardService) List(ctx context.Context, filter models.NoteFilter) (*models.NotePage, error) {
	return s.client.ListNotes(ctx, filter)
}

func (s *boardService) Get(ctx context.Context, id string) (*models.Note, error) {
	return s.client.GetNote(ctx, id)
}

func (s *boardService) Create(ctx context.Context, draft models.NoteDraft) (*models.Note, error) {
	return s.client.CreateNote(ctx, draft)
}

func (s *boardService) Edit(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error) {
	return s.client.UpdateNote(ctx, id, draft)
}

func (s *boardService) Move(ctx context.Context, id, column string) (*models.Note, error) {
	name, err := ResolveColumn(column)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateNote(ctx, id, models.NoteDraft{Category: &name})
}

// Toggle flips the completion flag of a note.
func (s *boardService) Toggle(ctx context.Context, id string) (*models.Note, error) {
	n, err := s.client.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	done := !n.IsCompleted
	return s.client.UpdateNote(ctx, id, models.NoteDraft{IsCompleted: &done})
}

func (s *boardService) Delete(ctx context.Context, id string) error {
	return s.client.DeleteNote(ctx, id)
}

// Export asks the server for a snapshot and saves it into dir. It returns
// the local file path.
func (s *boardService) Export(ctx context.Context, dir string) (string, *models.Export, error) {
	exp, err := s.client.ExportNotes(ctx)
	if err != nil {
		return "", nil, err
	}

	data, err := downloadExport(ctx, exp.URL)
	if err != nil {
		return "", exp, fmt.Errorf("download error: %w", err)
	}

	name := exp.Key
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "notes.json"
	}

	path, err := writeExport(dir, name, data)
	if err != nil {
		return "", exp, fmt.Errorf("save error: %w", err)
	}
	return path, exp, nil
}

// ResolveColumn accepts a column name in any case or its 1-based position
// on the board.
func ResolveColumn(s string) (string, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(models.Columns) {
			return models.Columns[n-1], nil
		}
		return "", fmt.Errorf("%w: %s", ErrUnknownColumn, s)
	}
	for _, c := range models.Columns {
		if strings.EqualFold(c, s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownColumn, s)
}
