package metadata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/kanbord/internal/client/models"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// SaveSession stores the bearer token and the user it belongs to. Run it
// inside a transaction so both keys land together.
func SaveSession(ctx context.Context, r Repository, s *models.Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := r.Set(ctx, keyToken, []byte(s.Token)); err != nil {
		return err
	}
	return r.Set(ctx, keyUser, user)
}

// LoadSession returns (nil, nil) when nothing was saved.
func LoadSession(ctx context.Context, r Repository) (*models.Session, error) {
	token, err := r.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, nil
	}

	s := &models.Session{Token: string(token)}

	raw, err := r.Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		s.User = &models.User{}
		if err := json.Unmarshal(raw, s.User); err != nil {
			return nil, fmt.Errorf("decode session user: %w", err)
		}
	}
	return s, nil
}

func ClearSession(ctx context.Context, r Repository) error {
	if err := r.Delete(ctx, keyToken); err != nil {
		return err
	}
	return r.Delete(ctx, keyUser)
}
