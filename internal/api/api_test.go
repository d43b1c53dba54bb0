package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRequest_MarshalOmitsUnsetFields(t *testing.T) {
	done := true
	b, err := json.Marshal(NoteRequest{IsCompleted: &done})
	require.NoError(t, err)
	assert.JSONEq(t, `{"isCompleted":true}`, string(b))
}

func TestNoteRequest_MarshalClearDueDate(t *testing.T) {
	title := "t"
	due := "2025-01-01"
	b, err := json.Marshal(NoteRequest{Title: &title, DueDate: &due, ClearDueDate: true, Tags: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","dueDate":null,"tags":[]}`, string(b))
}

func TestErrorResponse_OmitsEmptyErrors(t *testing.T) {
	b, err := json.Marshal(ErrorResponse{Message: "Note not found"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Note not found"}`, string(b))
}
