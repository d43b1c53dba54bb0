// Package services contains application services for the Kanbord CLI:
// session handling on top of the API client and the board operations the
// REPL exposes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kanbord/internal/client/client"
	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/dmitrijs2005/kanbord/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/kanbord/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: authenticate against the server and persist the session.
//   - RestoreSession: reuse a saved token; client.ErrNoSession when none.
//   - CurrentUser: ask the server who the token belongs to.
//   - Logout: forget the token locally.
//
// An ErrUnauthorized from the server clears the stored session.
type AuthService interface {
	Register(ctx context.Context, form RegisterForm) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	RestoreSession(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db}
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) Register(ctx context.Context, form RegisterForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	s, err := a.client.Register(ctx, form.FirstName, form.LastName, form.Email, form.Password)
	if err != nil {
		return nil, err
	}
	if err := a.saveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	s, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	if err := a.saveSession(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return s.User, nil
}

func (a *authService) saveSession(ctx context.Context, s *models.Session) error {
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.SaveSession(ctx, a.getMetadataRepo(tx), s)
	})
	if err != nil {
		return err
	}
	a.client.SetToken(s.Token)
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return metadata.ClearSession(ctx, a.getMetadataRepo(a.db))
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	u, err := a.client.Me(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		_ = a.Logout(ctx)
	}
	return u, err
}

// RestoreSession puts a saved token back on the client and returns the user
// saved with it. The token is not checked against the server here.
func (a *authService) RestoreSession(ctx context.Context) (*models.User, error) {
	s, err := metadata.LoadSession(ctx, a.getMetadataRepo(a.db))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, client.ErrNoSession
	}
	a.client.SetToken(s.Token)
	return s.User, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
