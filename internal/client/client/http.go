package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/api"
	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/dmitrijs2005/kanbord/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient talks to the API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, firstName, lastName, email, password string) (*models.Session, error) {
	req := api.RegisterRequest{FirstName: firstName, LastName: lastName, Email: email, Password: password}
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &models.Session{Token: resp.Token, User: fromAPIUser(resp.User)}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &models.Session{Token: resp.Token, User: fromAPIUser(resp.User)}, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var resp api.MeResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return fromAPIUser(resp.User), nil
}

func (c *HTTPClient) ListNotes(ctx context.Context, f models.NoteFilter) (*models.NotePage, error) {
	path := "/notes"
	if q := listQuery(f).Encode(); q != "" {
		path += "?" + q
	}

	var resp api.NotesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	page := &models.NotePage{
		Notes: make([]*models.Note, 0, len(resp.Notes)),
		Pagination: models.Pagination{
			CurrentPage: resp.Pagination.CurrentPage,
			TotalPages:  resp.Pagination.TotalPages,
			TotalNotes:  resp.Pagination.TotalNotes,
			HasNext:     resp.Pagination.HasNext,
			HasPrev:     resp.Pagination.HasPrev,
		},
	}
	for _, n := range resp.Notes {
		page.Notes = append(page.Notes, fromAPINote(n))
	}
	return page, nil
}

func (c *HTTPClient) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var resp api.NoteResponse
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return fromAPINote(resp.Note), nil
}

func (c *HTTPClient) CreateNote(ctx context.Context, d models.NoteDraft) (*models.Note, error) {
	var resp api.NoteResponse
	if err := c.do(ctx, http.MethodPost, "/notes", toNoteRequest(d), &resp); err != nil {
		return nil, err
	}
	return fromAPINote(resp.Note), nil
}

func (c *HTTPClient) UpdateNote(ctx context.Context, id string, d models.NoteDraft) (*models.Note, error) {
	var resp api.NoteResponse
	if err := c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), toNoteRequest(d), &resp); err != nil {
		return nil, err
	}
	return fromAPINote(resp.Note), nil
}

func (c *HTTPClient) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ExportNotes(ctx context.Context) (*models.Export, error) {
	var resp api.ExportResponse
	if err := c.do(ctx, http.MethodPost, "/notes/export", nil, &resp); err != nil {
		return nil, err
	}
	return &models.Export{Key: resp.Key, URL: resp.URL, Count: resp.Count, ExpiresAt: resp.ExpiresAt}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return mapStatus(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	var e api.ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&e)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.Message)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, e.Message)
	case resp.StatusCode == http.StatusBadRequest && len(e.Errors) > 0:
		return &common.ValidationError{Fields: e.Errors}
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		return ErrUnavailable
	}

	msg := e.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

func listQuery(f models.NoteFilter) url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	if f.IsCompleted != nil {
		q.Set("isCompleted", strconv.FormatBool(*f.IsCompleted))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func toNoteRequest(d models.NoteDraft) api.NoteRequest {
	return api.NoteRequest{
		Title:        d.Title,
		Content:      d.Content,
		Category:     d.Category,
		Priority:     d.Priority,
		DueDate:      d.DueDate,
		ClearDueDate: d.ClearDueDate,
		Tags:         d.Tags,
		IsCompleted:  d.IsCompleted,
	}
}

func fromAPIUser(u api.User) *models.User {
	return &models.User{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, FullName: u.FullName}
}

func fromAPINote(n api.Note) *models.Note {
	return &models.Note{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		Category:    n.Category,
		Priority:    n.Priority,
		DueDate:     n.DueDate,
		Tags:        n.Tags,
		IsCompleted: n.IsCompleted,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
