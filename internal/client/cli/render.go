package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/client/models"
)

const dateLayout = "2006-01-02"

func renderBoard(w io.Writer, cols []models.Column, now time.Time) {
	for _, c := range cols {
		fmt.Fprintf(w, "== %s (%d) ==\n", c.Name, len(c.Notes))
		if len(c.Notes) == 0 {
			fmt.Fprintln(w, "  (empty)")
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, n := range c.Notes {
			fmt.Fprintln(tw, "  "+noteRow(n, now))
		}
		_ = tw.Flush()
	}
}

func renderPage(w io.Writer, p *models.NotePage, now time.Time) {
	if len(p.Notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, n := range p.Notes {
			fmt.Fprintln(tw, noteRow(n, now)+"\t"+n.Category)
		}
		_ = tw.Flush()
	}

	pg := p.Pagination
	fmt.Fprintf(w, "Page %d of %d (%d notes)", pg.CurrentPage, max(pg.TotalPages, 1), pg.TotalNotes)
	if pg.HasNext {
		fmt.Fprintf(w, ", next: page=%d", pg.CurrentPage+1)
	}
	fmt.Fprintln(w)
}

func renderNote(w io.Writer, n *models.Note, now time.Time) {
	fmt.Fprintf(w, "%s %s\n", checkbox(n), n.Title)
	fmt.Fprintf(w, "id:       %s\n", n.ID)
	fmt.Fprintf(w, "column:   %s\n", n.Category)
	fmt.Fprintf(w, "priority: %s\n", n.Priority)
	if n.DueDate != nil {
		fmt.Fprintf(w, "due:      %s%s\n", n.DueDate.Format(dateLayout), overdueMark(n, now))
	}
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "tags:     %s\n", strings.Join(n.Tags, ", "))
	}
	fmt.Fprintf(w, "updated:  %s\n\n", n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintln(w, n.Content)
}

// noteRow is one tab-separated line: checkbox, id, title, priority, due.
func noteRow(n *models.Note, now time.Time) string {
	due := ""
	if n.DueDate != nil {
		due = "due " + n.DueDate.Format(dateLayout) + overdueMark(n, now)
	}
	row := fmt.Sprintf("%s\t%s\t%s\t%s\t%s", checkbox(n), n.ID, n.Title, n.Priority, due)
	if len(n.Tags) > 0 {
		row += "\t#" + strings.Join(n.Tags, " #")
	}
	return row
}

func checkbox(n *models.Note) string {
	if n.IsCompleted {
		return "[x]"
	}
	return "[ ]"
}

func overdueMark(n *models.Note, now time.Time) string {
	if n.Overdue(now) {
		return " OVERDUE"
	}
	return ""
}
