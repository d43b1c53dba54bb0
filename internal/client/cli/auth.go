package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kanbord/internal/client/client"
	"github.com/dmitrijs2005/kanbord/internal/client/services"
	"github.com/dmitrijs2005/kanbord/internal/shared"
)

// getSimpleText and getPassword point at the interactive helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the sign-up form. The form is checked locally before
// anything is sent, so typos are reported without a round trip.
func (a *App) Register(ctx context.Context) error {
	var form services.RegisterForm
	var err error

	if form.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if form.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)

	form.Password, form.ConfirmPassword = string(password), string(confirm)

	u, err := a.authService.Register(ctx, form)
	if err != nil {
		return err
	}

	a.user = u
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.FullName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid email or password")
		}
		return err
	}

	a.user = u
	a.logger.Debug(ctx, "logged in", "user_id", u.ID)
	fmt.Fprintf(a.out, "Welcome back, %s!\n", u.FullName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.user = nil
		}
		return err
	}
	a.user = u
	fmt.Fprintf(a.out, "%s <%s>\nid: %s\n", u.FullName, u.Email, u.ID)
	return nil
}
