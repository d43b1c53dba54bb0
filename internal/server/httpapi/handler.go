package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/api"
	"github.com/dmitrijs2005/kanbord/internal/logging"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
	"github.com/dmitrijs2005/kanbord/internal/server/validation"
	"github.com/gorilla/mux"
)

type UserService interface {
	Register(ctx context.Context, in models.RegisterInput) (*models.Session, error)
	Login(ctx context.Context, in models.LoginInput) (*models.Session, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type NoteService interface {
	Create(ctx context.Context, ownerID string, in models.NoteInput) (*models.Note, error)
	List(ctx context.Context, ownerID string, filter models.NoteFilter, page models.PageRequest) (*models.NotePage, error)
	Get(ctx context.Context, ownerID, id string) (*models.Note, error)
	Update(ctx context.Context, ownerID, id string, in models.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type ExportService interface {
	Export(ctx context.Context, ownerID string) (*models.NoteExport, error)
}

// Handler serves the REST API. Protected handlers read the caller from the
// request context and pass the id to the services explicitly.
type Handler struct {
	users     UserService
	notes     NoteService
	exports   ExportService
	validator *validation.Validator
	logger    logging.Logger
	now       func() time.Time
}

func NewHandler(us UserService, ns NoteService, es ExportService, v *validation.Validator, l logging.Logger) *Handler {
	return &Handler{
		users:     us,
		notes:     ns,
		exports:   es,
		validator: v,
		logger:    l.With("module", "http_handler"),
		now:       time.Now,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	sess, err := h.users.Register(r.Context(), models.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "Server error during registration")
		return
	}

	h.logger.Info(r.Context(), "Registered", "user", sess.User.ID)
	writeJSON(w, http.StatusCreated, api.AuthResponse{
		Message: "User registered successfully",
		Token:   sess.Token,
		User:    toAPIUser(sess.User),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	sess, err := h.users.Login(r.Context(), models.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.writeServiceError(w, r, err, "Server error during login")
		return
	}

	writeJSON(w, http.StatusOK, api.AuthResponse{
		Message: "Login successful",
		Token:   sess.Token,
		User:    toAPIUser(sess.User),
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.MeResponse{User: toAPIUser(userFrom(r.Context()))})
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readNoteInput(w, r, true)
	if !ok {
		return
	}

	note, err := h.notes.Create(r.Context(), userIDFrom(r.Context()), in)
	if err != nil {
		h.writeServiceError(w, r, err, "Server error during note creation")
		return
	}

	writeJSON(w, http.StatusCreated, api.NoteResponse{Message: "Note created successfully", Note: toAPINote(note)})
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	filter, page, verr := parseListQuery(r.URL.Query())
	if verr.Err() != nil {
		writeValidation(w, verr)
		return
	}

	res, err := h.notes.List(r.Context(), userIDFrom(r.Context()), filter, page)
	if err != nil {
		h.writeServiceError(w, r, err, "Server error while fetching notes")
		return
	}

	writeJSON(w, http.StatusOK, api.NotesResponse{
		Notes:      toAPINotes(res.Notes),
		Pagination: toAPIPagination(res.Pagination),
	})
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Get(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err, "Server error while fetching note")
		return
	}

	writeJSON(w, http.StatusOK, api.NoteResponse{Note: toAPINote(note)})
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readNoteInput(w, r, false)
	if !ok {
		return
	}

	note, err := h.notes.Update(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, r, err, "Server error during note update")
		return
	}

	writeJSON(w, http.StatusOK, api.NoteResponse{Message: "Note updated successfully", Note: toAPINote(note)})
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.Delete(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err, "Server error during note deletion")
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Note deleted successfully"})
}

func (h *Handler) ExportNotes(w http.ResponseWriter, r *http.Request) {
	exp, err := h.exports.Export(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err, "Server error during note export")
		return
	}

	writeJSON(w, http.StatusOK, api.ExportResponse{
		Message:   "Notes exported successfully",
		Key:       exp.Key,
		URL:       exp.URL,
		Count:     exp.Count,
		ExpiresAt: exp.ExpiresAt,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Message: "Server is running!", Status: "OK"})
}

func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.TestResponse{Message: "Test route working!", Timestamp: h.now().UTC()})
}

// readNoteInput decodes a note body. Type errors found while decoding are
// reported together with the rule violations of the remaining fields.
func (h *Handler) readNoteInput(w http.ResponseWriter, r *http.Request, creating bool) (models.NoteInput, bool) {
	in, verr, err := decodeNoteBody(w, r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return in, false
	}
	if verr.Err() == nil {
		return in, true
	}

	normalized := in
	normalized.Normalize()
	for _, f := range h.validator.Note(normalized, creating).Fields {
		if !verr.Has(f.Field) {
			verr.Add(f.Field, f.Message)
		}
	}
	writeValidation(w, verr)
	return in, false
}
