package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/kanbord/internal/client/client"
	"github.com/dmitrijs2005/kanbord/internal/client/services"
	"github.com/dmitrijs2005/kanbord/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(name string, args []string) error {
	if len(args) > 0 {
		name += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Me(ctx context.Context) error { return f.record("me", nil) }
func (f *fakeExec) Board(ctx context.Context) error { return f.record("board", nil) }
func (f *fakeExec) List(ctx context.Context, args []string) error {
	return f.record("list", args)
}
func (f *fakeExec) Show(ctx context.Context, args []string) error {
	return f.record("show", args)
}
func (f *fakeExec) Add(ctx context.Context) error { return f.record("add", nil) }
func (f *fakeExec) Edit(ctx context.Context, args []string) error {
	return f.record("edit", args)
}
func (f *fakeExec) Move(ctx context.Context, args []string) error {
	return f.record("move", args)
}
func (f *fakeExec) Done(ctx context.Context, args []string) error {
	return f.record("done", args)
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}
func (f *fakeExec) Export(ctx context.Context, args []string) error {
	return f.record("export", args)
}

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrint(t)

	input := strings.Join([]string{
		"board",
		"login",
		"help",
		"board",
		"list category=In Development page=2",
		"show n1",
		"add",
		"edit n1",
		"move n1 Done",
		"done n1",
		"delete n1",
		"export /tmp/x",
		"me",
		"foobar",
		"logout",
		"exit",
		"board",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"board",
		"list category=In Development page=2",
		"show n1",
		"add",
		"edit n1",
		"move n1 Done",
		"done n1",
		"delete n1",
		"export /tmp/x",
		"me",
		"logout",
	}, exec.calls)

	assert.Contains(t, *out, "Please log in first.")
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "kanbord status> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_LoggedOutHelpAndEOF(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nregister")))

	assert.Equal(t, []string{"register"}, exec.calls)
	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, "kanbord> ")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{loggedIn: true, err: client.ErrNotFound}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("show x\ndone x\nquit\n")))

	assert.Equal(t, []string{"show x", "done x"}, exec.calls)
	assert.Contains(t, *out, "Error: note not found")
}

func TestDescribeError(t *testing.T) {
	verr := &common.ValidationError{}
	verr.Add("title", "Title is required")
	verr.Add("content", "Content is required")

	tests := []struct {
		err  error
		want string
	}{
		{verr, "Title is required; Content is required"},
		{fmt.Errorf("wrapped: %w", client.ErrUnauthorized), "not authorized, please log in again"},
		{client.ErrUnavailable, "server unavailable"},
		{fmt.Errorf("%w: Archive", services.ErrUnknownColumn), "unknown column: Archive (use a column name or 1-4)"},
		{&client.APIError{Status: 500, Message: "Server error while fetching notes"}, "Server error while fetching notes"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, describeError(tt.err))
	}
}
