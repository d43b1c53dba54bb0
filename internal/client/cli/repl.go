package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/kanbord/internal/client/client"
	"github.com/dmitrijs2005/kanbord/internal/client/services"
	"github.com/dmitrijs2005/kanbord/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Board(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Move(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: board, list [category=..] [priority=..] [done=true|false] [page=N], " +
		"show <id>, add, edit <id>, move <id> <column>, done <id>, delete <id>, export [dir], me, logout, help, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or on "exit"/"quit". Command errors are printed
// and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("kanbord%s> ", prefixSpace(statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", describeError(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		if _, known := loggedInCommands[cmd]; known {
			printlnFn("Please log in first.")
			return nil
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "me":
		return a.Me(ctx)
	case "board", "b":
		return a.Board(ctx)
	case "list", "l":
		return a.List(ctx, args)
	case "show":
		return a.Show(ctx, args)
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx, args)
	case "move":
		return a.Move(ctx, args)
	case "done":
		return a.Done(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "export":
		return a.Export(ctx, args)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

var loggedInCommands = map[string]struct{}{
	"logout": {}, "me": {}, "board": {}, "b": {}, "list": {}, "l": {}, "show": {},
	"add": {}, "edit": {}, "move": {}, "done": {}, "delete": {}, "export": {},
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

// describeError turns client and service errors into one line for the user.
func describeError(err error) string {
	var verr *common.ValidationError
	var aerr *client.APIError
	switch {
	case errors.As(err, &verr):
		msgs := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			msgs = append(msgs, f.Message)
		}
		return strings.Join(msgs, "; ")
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized, please log in again"
	case errors.Is(err, client.ErrNotFound):
		return "note not found"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, services.ErrUnknownColumn):
		return err.Error() + " (use a column name or 1-4)"
	case errors.As(err, &aerr):
		return aerr.Message
	default:
		return err.Error()
	}
}
