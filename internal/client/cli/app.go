package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/client/client"
	"github.com/dmitrijs2005/kanbord/internal/client/config"
	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/dmitrijs2005/kanbord/internal/client/services"
	"github.com/dmitrijs2005/kanbord/internal/logging"
)

type App struct {
	config       *config.Config
	authService  services.AuthService
	boardService services.BoardService
	logger       logging.Logger
	db           *sql.DB
	user         *models.User
	reader       *bufio.Reader
	out          io.Writer
	now          func() time.Time
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.Verbose)

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing session store: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	return &App{
		config:       c,
		authService:  services.NewAuthService(apiClient, db),
		boardService: services.NewBoardService(apiClient),
		logger:       logger,
		db:           db,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		now:          time.Now,
	}, nil
}

// Run restores the saved session, if any, and serves the REPL until the
// user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.authService.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	fmt.Fprintln(a.out, "Welcome to Kanbord CLI (type 'help' for commands)")
	a.restore(ctx)

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) restore(ctx context.Context) {
	u, err := a.authService.RestoreSession(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrNoSession) {
			a.logger.Warn(ctx, "session restore failed", "error", err)
		}
		return
	}
	a.user = u

	current, err := a.authService.CurrentUser(ctx)
	switch {
	case err == nil:
		a.user = current
	case errors.Is(err, client.ErrUnauthorized):
		a.user = nil
		fmt.Fprintln(a.out, "Your session has expired, please log in again.")
		return
	default:
		a.logger.Warn(ctx, "could not verify session", "error", err)
	}
	if a.user != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", a.user.FullName)
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return "(" + a.user.Email + ")"
}
