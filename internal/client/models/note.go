// Package models defines the client-side view of Kanbord data.
package models

import "time"

// Board columns in display order. The server rejects anything else.
const (
	CategoryUnassigned    = "Unassigned"
	CategoryInDevelopment = "In Development"
	CategoryPendingReview = "Pending Review"
	CategoryDone          = "Done"
)

var Columns = []string{CategoryUnassigned, CategoryInDevelopment, CategoryPendingReview, CategoryDone}

var Priorities = []string{"Low", "Medium", "High"}

type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	FullName  string
}

type Note struct {
	ID          string
	Title       string
	Content     string
	Category    string
	Priority    string
	DueDate     *time.Time
	Tags        []string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overdue reports whether an open note is past its due date.
func (n *Note) Overdue(now time.Time) bool {
	return !n.IsCompleted && n.DueDate != nil && n.DueDate.Before(now)
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalNotes  int
	HasNext     bool
	HasPrev     bool
}

type NotePage struct {
	Notes      []*Note
	Pagination Pagination
}

// NoteFilter mirrors the list query string. Empty or nil fields are not sent.
type NoteFilter struct {
	Category    string
	Priority    string
	IsCompleted *bool
	Page        int
	Limit       int
}

// NoteDraft is a partial note for create and edit. Nil fields are left out
// of the request.
type NoteDraft struct {
	Title        *string
	Content      *string
	Category     *string
	Priority     *string
	DueDate      *string
	ClearDueDate bool
	Tags         []string
	IsCompleted  *bool
}

type Session struct {
	Token string
	User  *User
}

type Export struct {
	Key       string
	URL       string
	Count     int
	ExpiresAt time.Time
}

// Column is one board column with its notes, newest first.
type Column struct {
	Name  string
	Notes []*Note
}
