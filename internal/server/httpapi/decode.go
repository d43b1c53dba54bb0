package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
	"github.com/dmitrijs2005/kanbord/internal/server/validation"
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("invalid json body")

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errInvalidJSON
	}
	return body, nil
}

// decodeJSON strictly decodes a JSON object into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errInvalidJSON
	}
	return nil
}

// decodeNoteBody reads a note create/update body field by field so that a
// value of the wrong JSON type becomes a field violation instead of a
// rejected body. Keys outside the writable set (_id, user, createdAt, ...)
// are ignored.
func decodeNoteBody(w http.ResponseWriter, r *http.Request) (models.NoteInput, *common.ValidationError, error) {
	var in models.NoteInput
	verr := &common.ValidationError{}

	body, err := readBody(w, r)
	if err != nil {
		return in, verr, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return in, verr, errInvalidJSON
	}

	in.Title = stringField(raw, "title", validation.MsgTitle, verr)
	in.Content = stringField(raw, "content", validation.MsgContent, verr)
	in.Category = stringField(raw, "category", validation.MsgCategory, verr)
	in.Priority = stringField(raw, "priority", validation.MsgPriority, verr)

	if v, ok := raw["dueDate"]; ok {
		if isNull(v) {
			in.ClearDueDate = true
		} else {
			var s string
			switch {
			case json.Unmarshal(v, &s) != nil:
				verr.Add("dueDate", validation.MsgDueDate)
			case s == "":
				in.ClearDueDate = true
			default:
				in.DueDate = &s
			}
		}
	}

	if v, ok := raw["tags"]; ok && !isNull(v) {
		var tags []string
		if err := json.Unmarshal(v, &tags); err != nil {
			verr.Add("tags", validation.MsgTags)
		} else {
			in.Tags = tags
		}
	}

	if v, ok := raw["isCompleted"]; ok && !isNull(v) {
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			verr.Add("isCompleted", validation.MsgIsCompleted)
		} else {
			in.IsCompleted = &b
		}
	}

	return in, verr, nil
}

// stringField returns nil for an absent key. An explicit null is a
// violation like any other non-string value.
func stringField(raw map[string]json.RawMessage, key, msg string, verr *common.ValidationError) *string {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	if isNull(v) {
		verr.Add(key, msg)
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		verr.Add(key, msg)
		return nil
	}
	return &s
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// parseListQuery reads filters and paging from the query string. Empty
// parameters are treated as absent.
func parseListQuery(q url.Values) (models.NoteFilter, models.PageRequest, *common.ValidationError) {
	var filter models.NoteFilter
	page := models.PageRequest{Page: models.DefaultPage, Limit: models.DefaultLimit}
	verr := &common.ValidationError{}

	if v := q.Get("category"); v != "" {
		if c, ok := models.ParseCategory(v); ok {
			filter.Category = &c
		} else {
			verr.Add("category", validation.MsgCategory)
		}
	}
	if v := q.Get("priority"); v != "" {
		if p, ok := models.ParsePriority(v); ok {
			filter.Priority = &p
		} else {
			verr.Add("priority", validation.MsgPriority)
		}
	}
	if v := q.Get("isCompleted"); v != "" {
		switch v {
		case "true":
			b := true
			filter.IsCompleted = &b
		case "false":
			b := false
			filter.IsCompleted = &b
		default:
			verr.Add("isCompleted", validation.MsgIsCompleted)
		}
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			verr.Add("page", validation.MsgPage)
		} else {
			page.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > models.MaxLimit {
			verr.Add("limit", validation.MsgLimit)
		} else {
			page.Limit = n
		}
	}
	if !verr.Has("page") && !verr.Has("limit") && !page.InRange() {
		verr.Add("page", validation.MsgPage)
	}

	return filter, page, verr
}
