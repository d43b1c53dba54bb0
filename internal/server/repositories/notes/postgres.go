// Package notes provides the PostgreSQL-backed note repository.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/dmitrijs2005/kanbord/internal/dbx"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
	"github.com/lib/pq"
)

const noteColumns = `id, user_id, title, content, category, priority, due_date, tags, is_completed, created_at, updated_at`

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, n *models.Note) error {
	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Content, string(n.Category), string(n.Priority),
		n.DueDate, pq.Array(nonNilTags(n.Tags)), n.IsCompleted, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		WHERE id = $1 AND user_id = $2
		`
	return r.getOne(ctx, query, id, userID)
}

// GetForUpdate is Get with a row lock; call it inside dbx.WithTx.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id, userID string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
		`
	return r.getOne(ctx, query, id, userID)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// List returns one page of the user's notes, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.NoteFilter, page models.PageRequest) ([]*models.Note, error) {
	where, args := whereClause(userID, filter)
	args = append(args, page.Limit, page.Offset())

	query := fmt.Sprintf(`SELECT %s FROM notes
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, noteColumns, where, len(args)-1, len(args))

	return r.selectMany(ctx, query, args...)
}

func (r *PostgresRepository) Count(ctx context.Context, userID string, filter models.NoteFilter) (int, error) {
	where, args := whereClause(userID, filter)
	query := `SELECT COUNT(*) FROM notes WHERE ` + where

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context, userID string) ([]*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.selectMany(ctx, query, userID)
}

// Update overwrites the mutable columns of the note identified by n.ID and
// owned by n.UserID.
func (r *PostgresRepository) Update(ctx context.Context, n *models.Note) error {
	query := `
		UPDATE notes SET
			title = $3, content = $4, category = $5, priority = $6,
			due_date = $7, tags = $8, is_completed = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Content, string(n.Category), string(n.Priority),
		n.DueDate, pq.Array(nonNilTags(n.Tags)), n.IsCompleted, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if dbx.IsInvalidText(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]*models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// whereClause always starts with the owner condition so no listing can
// cross users.
func whereClause(userID string, f models.NoteFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	if f.Category != nil {
		args = append(args, string(*f.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Priority != nil {
		args = append(args, string(*f.Priority))
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if f.IsCompleted != nil {
		args = append(args, *f.IsCompleted)
		conds = append(conds, fmt.Sprintf("is_completed = $%d", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(s rowScanner) (*models.Note, error) {
	var (
		n        models.Note
		category string
		priority string
		dueDate  sql.NullTime
		tags     []string
	)
	if err := s.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &category, &priority,
		&dueDate, pq.Array(&tags), &n.IsCompleted, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}

	n.Category = models.Category(category)
	n.Priority = models.Priority(priority)
	if dueDate.Valid {
		d := dueDate.Time.UTC()
		n.DueDate = &d
	}
	n.Tags = nonNilTags(tags)
	return &n, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
