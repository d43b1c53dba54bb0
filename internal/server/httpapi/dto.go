package httpapi

import (
	"github.com/dmitrijs2005/kanbord/internal/api"
	"github.com/dmitrijs2005/kanbord/internal/server/models"
)

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		FullName:  u.FullName(),
	}
}

func toAPINote(n *models.Note) api.Note {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return api.Note{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		Category:    string(n.Category),
		Priority:    string(n.Priority),
		DueDate:     n.DueDate,
		Tags:        tags,
		IsCompleted: n.IsCompleted,
		User:        n.UserID,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func toAPINotes(notes []*models.Note) []api.Note {
	out := make([]api.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, toAPINote(n))
	}
	return out
}

func toAPIPagination(p models.Pagination) api.Pagination {
	return api.Pagination{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalNotes:  p.TotalNotes,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
	}
}
