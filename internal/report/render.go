package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Render writes r as newline-delimited text. Sections always appear in the
// same order; an empty group gets the None placeholder.
func Render(r *Report, labels Labels) string {
	if labels.ShortDate == nil {
		labels.ShortDate = English.ShortDate
	}
	var b strings.Builder

	if r.Period.SingleDay() {
		fmt.Fprintf(&b, labels.TitleDay, labels.ShortDate(r.Period.From))
	} else {
		fmt.Fprintf(&b, labels.TitleRange, labels.ShortDate(r.Period.From), labels.ShortDate(r.Period.To))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, labels.Generated, r.GeneratedOn.String())
	b.WriteString("\n")

	project := func(name string) string {
		if name == "" {
			return labels.Unclassified
		}
		return name
	}

	section(&b, labels.Projects, labels.None, len(r.Projects), func(i int) string {
		p := r.Projects[i]
		line := fmt.Sprintf("- %s (%s)", p.Name, p.Status)
		if !p.StartDate.IsZero() && !p.EndDate.IsZero() {
			line += fmt.Sprintf(" %s → %s", p.StartDate, p.EndDate)
		}
		return line
	})

	section(&b, labels.Completed, labels.None, len(r.Completed), func(i int) string {
		e := r.Completed[i]
		return fmt.Sprintf("- [%s] %s", project(e.ProjectName), e.Task.Name)
	})

	section(&b, labels.InProgress, labels.None, len(r.InProgress), func(i int) string {
		e := r.InProgress[i]
		line := fmt.Sprintf("- [%s] %s (%d%%)", project(e.ProjectName), e.Task.Name, e.Task.Progress)
		if e.LatestNote != "" {
			line += "\n  - " + e.LatestNote
		}
		return line
	})

	section(&b, labels.Delayed, labels.None, len(r.Delayed), func(i int) string {
		e := r.Delayed[i]
		detail := fmt.Sprintf(labels.DelayedDetail, e.Task.Progress, e.Task.PlannedEnd.String(), e.OverdueDays)
		line := fmt.Sprintf("- [%s] %s (%s)", project(e.ProjectName), e.Task.Name, detail)
		if e.Task.Notes != "" {
			line += "\n  - " + e.Task.Notes
		}
		return line
	})

	if r.IncludeAdhoc {
		section(&b, labels.Adhoc, labels.None, len(r.Adhoc), func(i int) string {
			e := r.Adhoc[i]
			line := "- " + e.Adhoc.Date.String() + " "
			if e.Adhoc.RelatedProjectID != "" {
				line += "[" + project(e.ProjectName) + "] "
			}
			line += e.Adhoc.Title
			if e.Adhoc.Hours != nil {
				line += " (" + formatHours(*e.Adhoc.Hours) + ")"
			}
			if e.Adhoc.Detail != "" {
				line += "\n  - " + e.Adhoc.Detail
			}
			return line
		})
	}

	if r.IncludeWorkLogs {
		section(&b, labels.WorkLogs, labels.None, len(r.WorkLogs), func(i int) string {
			e := r.WorkLogs[i]
			task := e.TaskName
			if e.TaskMissing {
				task = labels.DeletedTask
			}
			line := fmt.Sprintf("- %s [%s] %s: %s", e.Log.Date.String(), project(e.ProjectName), task, e.Log.Note)
			var extra []string
			if e.Log.Hours != nil {
				extra = append(extra, formatHours(*e.Log.Hours))
			}
			if e.Log.ProgressAfter != nil {
				extra = append(extra, strconv.Itoa(*e.Log.ProgressAfter)+"%")
			}
			if len(extra) > 0 {
				line += " (" + strings.Join(extra, ", ") + ")"
			}
			return line
		})
	}

	section(&b, labels.NextSteps, labels.NoNextSteps, len(r.NextSteps), func(i int) string {
		e := r.NextSteps[i]
		return "- [" + project(e.ProjectName) + "] " + fmt.Sprintf(labels.NextStep, e.Task.Name, 100-e.Task.Progress)
	})

	return b.String()
}

// RenderError produces the error-only report used when options are unusable.
func RenderError(err error, labels Labels) string {
	var b strings.Builder
	b.WriteString(labels.Error)
	b.WriteString("\n- ")
	b.WriteString(err.Error())
	b.WriteString("\n")
	return b.String()
}

func section(b *strings.Builder, header, none string, n int, line func(int) string) {
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n")
	if n == 0 {
		b.WriteString(none)
		b.WriteString("\n")
		return
	}
	for i := 0; i < n; i++ {
		b.WriteString(line(i))
		b.WriteString("\n")
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
