// Package api defines the JSON documents exchanged between the Kanbord
// server and its clients.
package api

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/common"
)

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
}

// Note uses the "_id" key the board frontend has always read.
type Note struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
	IsCompleted bool       `json:"isCompleted"`
	User        string     `json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalNotes  int  `json:"totalNotes"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type MeResponse struct {
	User User `json:"user"`
}

// NoteRequest is a create or update body. Nil fields are omitted so an
// update only touches what was set; ClearDueDate sends an explicit null.
type NoteRequest struct {
	Title        *string
	Content      *string
	Category     *string
	Priority     *string
	DueDate      *string
	ClearDueDate bool
	Tags         []string
	IsCompleted  *bool
}

func (r NoteRequest) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if r.Title != nil {
		body["title"] = *r.Title
	}
	if r.Content != nil {
		body["content"] = *r.Content
	}
	if r.Category != nil {
		body["category"] = *r.Category
	}
	if r.Priority != nil {
		body["priority"] = *r.Priority
	}
	switch {
	case r.ClearDueDate:
		body["dueDate"] = nil
	case r.DueDate != nil:
		body["dueDate"] = *r.DueDate
	}
	if r.Tags != nil {
		body["tags"] = r.Tags
	}
	if r.IsCompleted != nil {
		body["isCompleted"] = *r.IsCompleted
	}
	return json.Marshal(body)
}

type NoteResponse struct {
	Message string `json:"message,omitempty"`
	Note    Note   `json:"note"`
}

type NotesResponse struct {
	Notes      []Note     `json:"notes"`
	Pagination Pagination `json:"pagination"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx reply. Errors is only set
// for validation failures.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []common.FieldError `json:"errors,omitempty"`
}

type ExportResponse struct {
	Message   string    `json:"message"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type HealthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type TestResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
