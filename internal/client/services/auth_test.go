package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/kanbord/internal/client/client"
	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = &models.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", FullName: "Ada Lovelace"}

func validForm() RegisterForm {
	return RegisterForm{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret1", ConfirmPassword: "secret1"}
}

func TestLogin_SavesSessionAndSetsToken(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{session: &models.Session{Token: "tok", User: ada}}
	s := NewAuthService(fc, db)

	u, err := s.Login(context.Background(), "ada@example.com", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, ada, u)
	assert.Equal(t, "tok", fc.token)
	assert.Equal(t, []byte("tok"), getMeta(t, db, "token"))
}

func TestLogin_ServerErrorKeepsStoreEmpty(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{authErr: client.ErrUnauthorized}
	s := NewAuthService(fc, db)

	_, err := s.Login(context.Background(), "ada@example.com", []byte("wrong"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Nil(t, getMeta(t, db, "token"))
	assert.Empty(t, fc.token)
}

func TestRegister_ValidatesBeforeCallingServer(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{session: &models.Session{Token: "tok", User: ada}}
	s := NewAuthService(fc, db)

	form := validForm()
	form.ConfirmPassword = "other"
	_, err := s.Register(context.Background(), form)
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, fc.registered)

	u, err := s.Register(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, ada, u)
	assert.Equal(t, []string{"Ada", "Lovelace", "ada@example.com"}, fc.registered)
	assert.Equal(t, "tok", fc.token)
}

func TestRestoreSessionAndLogout(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{session: &models.Session{Token: "tok", User: ada}}
	s := NewAuthService(fc, db)
	ctx := context.Background()

	_, err := s.RestoreSession(ctx)
	require.ErrorIs(t, err, client.ErrNoSession)

	_, err = s.Login(ctx, "ada@example.com", []byte("secret1"))
	require.NoError(t, err)

	fresh := &fakeClient{}
	u, err := NewAuthService(fresh, db).RestoreSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, ada, u)
	assert.Equal(t, "tok", fresh.token)

	require.NoError(t, s.Logout(ctx))
	assert.Empty(t, fc.token)
	_, err = s.RestoreSession(ctx)
	require.ErrorIs(t, err, client.ErrNoSession)
}

func TestCurrentUser_UnauthorizedClearsSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{session: &models.Session{Token: "tok", User: ada}}
	s := NewAuthService(fc, db)
	ctx := context.Background()

	_, err := s.Login(ctx, "ada@example.com", []byte("secret1"))
	require.NoError(t, err)

	fc.me = ada
	u, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.FullName)

	fc.me, fc.meErr = nil, client.ErrUnauthorized
	_, err = s.CurrentUser(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Nil(t, getMeta(t, db, "token"))
}

func TestPingAndClose(t *testing.T) {
	fc := &fakeClient{healthErr: client.ErrUnavailable}
	s := NewAuthService(fc, setupDB(t))

	require.True(t, errors.Is(s.Ping(context.Background()), client.ErrUnavailable))
	require.NoError(t, s.Close(context.Background()))
	assert.True(t, fc.closed)
}
