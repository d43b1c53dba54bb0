package models

import (
	"math"
	"strings"
	"time"
)

// Category is the board column a note sits in. Any category may follow any
// other; there is no transition order.
type Category string

const (
	CategoryUnassigned    Category = "Unassigned"
	CategoryInDevelopment Category = "In Development"
	CategoryPendingReview Category = "Pending Review"
	CategoryDone          Category = "Done"
)

// Categories lists every category in board column order.
var Categories = []Category{
	CategoryUnassigned,
	CategoryInDevelopment,
	CategoryPendingReview,
	CategoryDone,
}

func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case CategoryUnassigned, CategoryInDevelopment, CategoryPendingReview, CategoryDone:
		return c, true
	default:
		return "", false
	}
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	default:
		return "", false
	}
}

const (
	MaxTitleLength   = 100
	MaxContentLength = 2000
	MaxTagLength     = 20
)

type Note struct {
	ID          string
	UserID      string
	Title       string
	Content     string
	Category    Category
	Priority    Priority
	DueDate     *time.Time
	Tags        []string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NoteInput carries the writable note fields. A nil field was not supplied.
// ClearDueDate is set when the caller explicitly asked to drop the due date.
type NoteInput struct {
	Title        *string  `json:"title" validate:"omitnil,min=1,max=100"`
	Content      *string  `json:"content" validate:"omitnil,min=1,max=2000"`
	Category     *string  `json:"category" validate:"omitnil,category"`
	Priority     *string  `json:"priority" validate:"omitnil,priority"`
	DueDate      *string  `json:"dueDate" validate:"omitnil,iso8601"`
	ClearDueDate bool     `json:"-"`
	Tags         []string `json:"tags" validate:"omitempty,dive,max=20"`
	IsCompleted  *bool    `json:"isCompleted"`
}

// Normalize trims text fields and tags. Blank tags are dropped and repeated
// tags collapse to their first occurrence.
func (in *NoteInput) Normalize() {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	if in.Content != nil {
		c := strings.TrimSpace(*in.Content)
		in.Content = &c
	}
	if in.DueDate != nil {
		d := strings.TrimSpace(*in.DueDate)
		in.DueDate = &d
	}
	if in.Tags != nil {
		in.Tags = NormalizeTags(in.Tags)
	}
}

func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueDate accepts the ISO-8601 shapes browsers and clients send:
// full timestamps with or without zone, minute precision, or a bare date.
// Zoneless values are taken as UTC. Precision is cut to microseconds,
// the resolution of TIMESTAMPTZ.
func ParseDueDate(s string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Microsecond), true
		}
	}
	return time.Time{}, false
}

// NoteFilter narrows a listing. Nil fields do not filter.
type NoteFilter struct {
	Category    *Category
	Priority    *Priority
	IsCompleted *bool
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PageRequest struct {
	Page  int
	Limit int
}

// InRange reports whether the page is at least 1, the limit is within
// 1..MaxLimit and the offset of the page fits in an int.
func (p PageRequest) InRange() bool {
	if p.Page < 1 || p.Limit < 1 || p.Limit > MaxLimit {
		return false
	}
	return p.Page <= math.MaxInt/p.Limit
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalNotes  int
	HasNext     bool
	HasPrev     bool
}

func NewPagination(p PageRequest, total int) Pagination {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		TotalNotes:  total,
		HasNext:     p.Page < totalPages,
		HasPrev:     p.Page > 1,
	}
}

type NotePage struct {
	Notes      []*Note
	Pagination Pagination
}

// NoteExport points at an uploaded snapshot of a user's notes.
type NoteExport struct {
	Key       string
	URL       string
	Count     int
	ExpiresAt time.Time
}
