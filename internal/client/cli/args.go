package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/kanbord/internal/client/models"
	"github.com/dmitrijs2005/kanbord/internal/client/services"
)

var errNeedID = errors.New("a note id is required")

// parseListArgs reads key=value filters. A bare word continues the previous
// value, so "category=In Development" works without quotes.
func parseListArgs(args []string) (models.NoteFilter, error) {
	var f models.NoteFilter

	values := map[string]string{}
	var last string
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			if last == "" {
				return f, fmt.Errorf("expected key=value, got %q", arg)
			}
			values[last] += " " + arg
			continue
		}
		last = strings.ToLower(k)
		values[last] = v
	}

	for k, v := range values {
		switch k {
		case "category", "column":
			c, err := services.ResolveColumn(v)
			if err != nil {
				return f, err
			}
			f.Category = c
		case "priority":
			p, ok := resolvePriority(v)
			if !ok {
				return f, fmt.Errorf("unknown priority %q (Low, Medium, High)", v)
			}
			f.Priority = p
		case "done", "completed":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return f, fmt.Errorf("done must be true or false, got %q", v)
			}
			f.IsCompleted = &b
		case "page", "limit":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return f, fmt.Errorf("%s must be a positive number, got %q", k, v)
			}
			if k == "page" {
				f.Page = n
			} else {
				f.Limit = n
			}
		default:
			return f, fmt.Errorf("unknown filter %q", k)
		}
	}
	return f, nil
}

func resolvePriority(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, p := range models.Priorities {
		if strings.EqualFold(p, s) {
			return p, true
		}
	}
	return "", false
}

func noteID(args []string) (string, error) {
	if len(args) == 0 {
		return "", errNeedID
	}
	return args[0], nil
}
