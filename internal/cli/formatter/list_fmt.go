package formatter

import (
	"strconv"

	"github.com/alexanderramin/ganttline/internal/domain"
)

func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects.") + "\n"
	}
	headers := []string{"ID", "NAME", "OWNER", "STATUS", "START", "END"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		owner := p.Owner
		if owner == "" {
			owner = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			owner,
			ProjectStatusPill(p.Status),
			p.StartDate.String(),
			p.EndDate.String(),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatTaskList renders tasks with their project names. names maps
// project IDs to names; tasks pointing elsewhere show as unclassified.
func FormatTaskList(tasks []*domain.Task, names map[string]string) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	headers := []string{"ID", "PROJECT", "TASK", "START", "END", "PROGRESS", "STATUS", "PRIORITY"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		project := names[t.ProjectID]
		switch {
		case t.ProjectID == "":
			project = Dim("--")
		case project == "":
			project = StyleYellow.Render("Unclassified")
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			project,
			Bold(t.Name),
			t.PlannedStart.String(),
			t.PlannedEnd.String(),
			RenderProgress(t.Progress, 10),
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
		})
	}
	return RenderBox("Tasks", RenderTable(headers, rows))
}

// FormatWorkLogList renders logs with the task each belongs to. taskNames
// maps task IDs to names.
func FormatWorkLogList(logs []*domain.WorkLog, taskNames map[string]string) string {
	if len(logs) == 0 {
		return Dim("No work logs.") + "\n"
	}
	headers := []string{"ID", "DATE", "TASK", "NOTE", "HOURS", "PROGRESS"}
	rows := make([][]string, 0, len(logs))
	for _, w := range logs {
		task, ok := taskNames[w.TaskID]
		if !ok {
			task = StyleRed.Render("deleted task")
		}
		progress := Dim("--")
		if w.ProgressAfter != nil {
			progress = strconv.Itoa(*w.ProgressAfter) + "%"
		}
		rows = append(rows, []string{
			TruncID(w.ID),
			w.Date.String(),
			task,
			Truncate(w.Note, 48),
			FormatHours(w.Hours),
			progress,
		})
	}
	return RenderBox("Work logs", RenderTable(headers, rows))
}

func FormatAdhocList(items []*domain.AdhocTask, names map[string]string) string {
	if len(items) == 0 {
		return Dim("No ad-hoc tasks.") + "\n"
	}
	headers := []string{"ID", "DATE", "TITLE", "PROJECT", "HOURS"}
	rows := make([][]string, 0, len(items))
	for _, a := range items {
		project := Dim("--")
		if a.RelatedProjectID != "" {
			project = names[a.RelatedProjectID]
			if project == "" {
				project = StyleYellow.Render("Unclassified")
			}
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			a.Date.String(),
			Bold(a.Title),
			project,
			FormatHours(a.Hours),
		})
	}
	return RenderBox("Ad-hoc tasks", RenderTable(headers, rows))
}
