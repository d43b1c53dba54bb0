package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/kanbord/internal/api"
	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/dmitrijs2005/kanbord/internal/server/services"
)

const (
	msgValidationFailed = "Validation failed"
	msgInvalidJSON      = "Invalid JSON body"
	msgNoteNotFound     = "Note not found"
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"
	msgTooManyRequests  = "Too many requests"
	msgNoToken          = "No token, authorization denied"
	msgBadToken         = "Token is not valid"
	msgBadCredentials   = "Invalid credentials"
	msgExportDisabled   = "Export is not configured"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Message: msg})
}

func writeValidation(w http.ResponseWriter, verr *common.ValidationError) {
	writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Message: msgValidationFailed, Errors: verr.Fields})
}

// writeServiceError maps the service error taxonomy onto HTTP. Anything
// unexpected is logged and answered with the operation's generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr)
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, msgBadCredentials)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgNoteNotFound)
	case errors.Is(err, services.ErrExportDisabled):
		writeMessage(w, http.StatusNotFound, msgExportDisabled)
	default:
		h.logger.Error(r.Context(), op, "error", err, "user", userIDFrom(r.Context()))
		writeMessage(w, http.StatusInternalServerError, op)
	}
}
