package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttline/internal/calendar"
)

// resolvePrefix matches input against ids: an exact ID first, then a
// unique prefix.
func resolvePrefix(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveProjectID accepts a project ID, a unique ID prefix or an exact
// name (case-insensitive).
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	id, err := resolvePrefix("project", input, ids)
	if err == nil {
		return id, nil
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}
	return "", err
}

func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	tasks, err := app.Tasks.List(ctx, "")
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return resolvePrefix("task", input, ids)
}

func resolveWorkLogID(ctx context.Context, app *App, input string) (string, error) {
	logs, err := app.WorkLogs.List(ctx, "")
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(logs))
	for _, w := range logs {
		ids = append(ids, w.ID)
	}
	return resolvePrefix("work log", input, ids)
}

func resolveAdhocID(ctx context.Context, app *App, input string) (string, error) {
	items, err := app.Adhoc.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.ID)
	}
	return resolvePrefix("ad-hoc task", input, ids)
}

// parseDateFlag reads a YYYY-MM-DD flag value. An empty value yields
// fallback and "today" the current day.
func parseDateFlag(name, value string, app *App, fallback calendar.Date) (calendar.Date, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return fallback, nil
	case "today":
		return app.today(), nil
	}
	d, err := calendar.Parse(value)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}
