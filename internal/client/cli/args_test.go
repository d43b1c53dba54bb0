package cli

import (
	"testing"

	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListArgs(t *testing.T) {
	done := true

	tests := []struct {
		name    string
		args    []string
		want    models.NoteFilter
		wantErr string
	}{
		{name: "none", args: nil, want: models.NoteFilter{}},
		{name: "multi word category", args: []string{"category=in", "development", "page=2"},
			want: models.NoteFilter{Category: "In Development", Page: 2}},
		{name: "column number and priority", args: []string{"column=4", "priority=high", "done=true", "limit=5"},
			want: models.NoteFilter{Category: "Done", Priority: "High", IsCompleted: &done, Limit: 5}},
		{name: "bad priority", args: []string{"priority=urgent"}, wantErr: "unknown priority"},
		{name: "bad done", args: []string{"done=maybe"}, wantErr: "done must be true or false"},
		{name: "bad page", args: []string{"page=0"}, wantErr: "page must be a positive number"},
		{name: "bad column", args: []string{"category=Archive"}, wantErr: "unknown column"},
		{name: "unknown key", args: []string{"owner=me"}, wantErr: "unknown filter"},
		{name: "bare word", args: []string{"Done"}, wantErr: "expected key=value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseListArgs(tt.args)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoteID(t *testing.T) {
	_, err := noteID(nil)
	require.ErrorIs(t, err, errNeedID)

	id, err := noteID([]string{"n1", "extra"})
	require.NoError(t, err)
	assert.Equal(t, "n1", id)
}
