package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/dmitrijs2005/kanbord/internal/client/services"
)

// getMultiline can be swapped in tests.
var getMultiline = GetMultiline

const defaultExportDir = "exports"

func (a *App) Board(ctx context.Context) error {
	cols, err := a.boardService.Board(ctx)
	if err != nil {
		return err
	}
	renderBoard(a.out, cols, a.now())
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	f, err := parseListArgs(args)
	if err != nil {
		return err
	}
	page, err := a.boardService.List(ctx, f)
	if err != nil {
		return err
	}
	renderPage(a.out, page, a.now())
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := noteID(args)
	if err != nil {
		return err
	}
	n, err := a.boardService.Get(ctx, id)
	if err != nil {
		return err
	}
	renderNote(a.out, n, a.now())
	return nil
}

// Add prompts for a new note. Category and priority fall back to the
// server defaults when left blank.
func (a *App) Add(ctx context.Context) error {
	var d models.NoteDraft

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	d.Title = &title

	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	d.Content = &content

	if err := a.promptMeta(&d, nil); err != nil {
		return err
	}

	n, err := a.boardService.Create(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Note created successfully (%s)\n", n.ID)
	return nil
}

// Edit shows each current value; an empty answer keeps it.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := noteID(args)
	if err != nil {
		return err
	}
	cur, err := a.boardService.Get(ctx, id)
	if err != nil {
		return err
	}

	var d models.NoteDraft

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", cur.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		d.Title = &title
	}

	content, err := getMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		d.Content = &content
	}

	if err := a.promptMeta(&d, cur); err != nil {
		return err
	}

	n, err := a.boardService.Edit(ctx, id, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Note updated successfully (%s)\n", n.ID)
	return nil
}

// promptMeta asks for category, priority, due date and tags. With cur set
// the prompts show current values and "-" clears the due date or tags.
func (a *App) promptMeta(d *models.NoteDraft, cur *models.Note) error {
	label := func(name, current string) string {
		if cur == nil {
			return name
		}
		return fmt.Sprintf("%s [%s]", name, current)
	}

	cat, err := getSimpleText(a.reader, label("Column (1-4 or name, blank for default)", categoryOf(cur)), a.out)
	if err != nil {
		return err
	}
	if cat != "" {
		c, err := services.ResolveColumn(cat)
		if err != nil {
			return err
		}
		d.Category = &c
	}

	pr, err := getSimpleText(a.reader, label("Priority (Low, Medium, High)", priorityOf(cur)), a.out)
	if err != nil {
		return err
	}
	if pr != "" {
		p, ok := resolvePriority(pr)
		if !ok {
			return fmt.Errorf("unknown priority %q (Low, Medium, High)", pr)
		}
		d.Priority = &p
	}

	due, err := getSimpleText(a.reader, label("Due date (YYYY-MM-DD)", dueOf(cur)), a.out)
	if err != nil {
		return err
	}
	switch {
	case due == "-" && cur != nil:
		d.ClearDueDate = true
	case due != "":
		d.DueDate = &due
	}

	tags, err := getSimpleText(a.reader, label("Tags (comma separated)", strings.Join(tagsOf(cur), ", ")), a.out)
	if err != nil {
		return err
	}
	switch {
	case tags == "-" && cur != nil:
		d.Tags = []string{}
	case tags != "":
		d.Tags = SplitTags(tags)
	}
	return nil
}

func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: move <id> <column>")
	}
	n, err := a.boardService.Move(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Moved %q to %s\n", n.Title, n.Category)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	id, err := noteID(args)
	if err != nil {
		return err
	}
	n, err := a.boardService.Toggle(ctx, id)
	if err != nil {
		return err
	}
	state := "open"
	if n.IsCompleted {
		state = "completed"
	}
	fmt.Fprintf(a.out, "%q is now %s\n", n.Title, state)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := noteID(args)
	if err != nil {
		return err
	}
	if err := a.boardService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note deleted successfully")
	return nil
}

func (a *App) Export(ctx context.Context, args []string) error {
	dir := defaultExportDir
	if len(args) > 0 {
		dir = args[0]
	}
	path, exp, err := a.boardService.Export(ctx, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d notes to %s\n", exp.Count, path)
	return nil
}

func categoryOf(n *models.Note) string {
	if n == nil {
		return ""
	}
	return n.Category
}

func priorityOf(n *models.Note) string {
	if n == nil {
		return ""
	}
	return n.Priority
}

func dueOf(n *models.Note) string {
	if n == nil || n.DueDate == nil {
		return ""
	}
	return n.DueDate.Format(dateLayout)
}

func tagsOf(n *models.Note) []string {
	if n == nil {
		return nil
	}
	return n.Tags
}
