package httpapi

import (
	"context"

	"github.com/dmitrijs2005/kanbord/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

func withUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// userFrom returns the user attached by authMiddleware.
func userFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

func userIDFrom(ctx context.Context) string {
	if u := userFrom(ctx); u != nil {
		return u.ID
	}
	return ""
}
