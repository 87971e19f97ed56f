// Package report reduces an AppState into a periodic progress report.
//
// Build computes the structured groups; Render turns them into plain text
// with a fixed section order. Neither touches the state it is given.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

// MaxNextSteps caps the "next steps" section.
const MaxNextSteps = 5

// ErrInvalidOptions is matched by every OptionsError.
var ErrInvalidOptions = errors.New("invalid report options")

// OptionsError reports an unusable option.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("report option %s: %s", e.Field, e.Message)
}

func (e *OptionsError) Is(target error) bool {
	return target == ErrInvalidOptions
}

// Options selects what a report covers. IncludeAdhoc and IncludeWorkLogs
// have no implicit default; callers set them.
type Options struct {
	From            calendar.Date
	To              calendar.Date
	ProjectIDs      []string // empty means all projects
	IncludeAdhoc    bool
	IncludeWorkLogs bool
	Today           calendar.Date // zero means the current date
}

// DefaultOptions covers the Monday..Sunday week containing now, with
// ad-hoc tasks and work logs included.
func DefaultOptions(now time.Time) Options {
	today := calendar.Today(now)
	week := calendar.WeekRange(today)
	return Options{
		From:            week.From,
		To:              week.To,
		IncludeAdhoc:    true,
		IncludeWorkLogs: true,
		Today:           today,
	}
}

// TaskEntry is one task line. An empty ProjectName means unclassified.
type TaskEntry struct {
	Task        domain.Task
	ProjectName string
	LatestNote  string
	OverdueDays int
}

// AdhocEntry is one ad-hoc line.
type AdhocEntry struct {
	Adhoc       domain.AdhocTask
	ProjectName string
}

// LogEntry is one work-log line. TaskMissing marks a log whose task is gone.
type LogEntry struct {
	Log         domain.WorkLog
	TaskName    string
	ProjectName string
	TaskMissing bool
}

// Report is the structured result of Build.
type Report struct {
	Period          calendar.Period
	GeneratedOn     calendar.Date
	IncludeAdhoc    bool
	IncludeWorkLogs bool

	// Projects lists the selected projects regardless of period.
	Projects   []domain.Project
	Completed  []TaskEntry
	InProgress []TaskEntry
	Delayed    []TaskEntry
	Adhoc      []AdhocEntry
	WorkLogs   []LogEntry
	NextSteps  []TaskEntry

	// Warnings lists dangling references touched by this report.
	Warnings []domain.DanglingReference
}

// Build reduces state into a Report. An inverted period is swapped.
func Build(state *domain.AppState, opts Options) (*Report, error) {
	if state == nil {
		state = domain.NewAppState()
	}
	if opts.From.IsZero() {
		return nil, &OptionsError{Field: "from", Message: "period start is required"}
	}
	if opts.To.IsZero() {
		return nil, &OptionsError{Field: "to", Message: "period end is required"}
	}
	period := calendar.NewPeriod(opts.From, opts.To).Normalize()
	today := opts.Today
	if today.IsZero() {
		today = calendar.Today(time.Now())
	}

	names := state.ProjectNames()
	selected := make(map[string]bool, len(opts.ProjectIDs))
	for _, id := range opts.ProjectIDs {
		selected[id] = true
	}

	r := &Report{
		Period:          period,
		GeneratedOn:     today,
		IncludeAdhoc:    opts.IncludeAdhoc,
		IncludeWorkLogs: opts.IncludeWorkLogs,
	}
	warned := make(map[string]bool)
	warn := func(ref domain.DanglingReference) {
		key := string(ref.Kind) + "|" + ref.SourceID
		if !warned[key] {
			warned[key] = true
			r.Warnings = append(r.Warnings, ref)
		}
	}

	for _, p := range state.Projects {
		if len(selected) == 0 || selected[p.ID] {
			r.Projects = append(r.Projects, p)
		}
	}

	tasks := timeline.FilterByProjects(state.Tasks, opts.ProjectIDs)
	inPeriod := timeline.TasksInRange(tasks, period)

	var logsInPeriod []domain.WorkLog
	for _, w := range state.WorkLogs {
		if period.Contains(w.Date) {
			logsInPeriod = append(logsInPeriod, w)
		}
	}

	entry := func(t domain.Task) TaskEntry {
		name, ok := names[t.ProjectID]
		if t.ProjectID != "" && !ok {
			warn(domain.DanglingReference{Kind: domain.RefTaskProject, SourceID: t.ID, TargetID: t.ProjectID})
		}
		return TaskEntry{Task: t, ProjectName: name}
	}

	for _, t := range inPeriod {
		if t.Status == domain.TaskCompleted || t.Progress >= 100 {
			r.Completed = append(r.Completed, entry(t))
		}
	}

	for _, t := range inPeriod {
		if t.Status != domain.TaskInProgress || t.Progress >= 100 {
			continue
		}
		e := entry(t)
		if opts.IncludeWorkLogs {
			e.LatestNote = latestNote(logsInPeriod, t.ID)
		}
		r.InProgress = append(r.InProgress, e)
	}

	for _, t := range timeline.DelayedTasks(inPeriod, period.To) {
		e := entry(t)
		e.OverdueDays, _ = timeline.CalculateTaskDelay(t, period.To)
		r.Delayed = append(r.Delayed, e)
	}

	if opts.IncludeAdhoc {
		for _, a := range state.AdhocTasks {
			if !period.Contains(a.Date) {
				continue
			}
			if len(selected) > 0 && a.RelatedProjectID != "" && !selected[a.RelatedProjectID] {
				continue
			}
			name, ok := names[a.RelatedProjectID]
			if a.RelatedProjectID != "" && !ok {
				warn(domain.DanglingReference{Kind: domain.RefAdhocProject, SourceID: a.ID, TargetID: a.RelatedProjectID})
			}
			r.Adhoc = append(r.Adhoc, AdhocEntry{Adhoc: a, ProjectName: name})
		}
	}

	if opts.IncludeWorkLogs {
		logs := make([]domain.WorkLog, len(logsInPeriod))
		copy(logs, logsInPeriod)
		sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date.Before(logs[j].Date) })

		for _, w := range logs {
			task, ok := state.TaskByID(w.TaskID)
			if !ok {
				if len(selected) > 0 {
					continue
				}
				warn(domain.DanglingReference{Kind: domain.RefWorkLogTask, SourceID: w.ID, TargetID: w.TaskID})
				r.WorkLogs = append(r.WorkLogs, LogEntry{Log: w, TaskMissing: true})
				continue
			}
			if len(selected) > 0 && !selected[task.ProjectID] {
				continue
			}
			r.WorkLogs = append(r.WorkLogs, LogEntry{Log: w, TaskName: task.Name, ProjectName: names[task.ProjectID]})
		}
	}

	for _, e := range r.InProgress {
		if len(r.NextSteps) == MaxNextSteps {
			break
		}
		r.NextSteps = append(r.NextSteps, e)
	}

	return r, nil
}

// latestNote returns the note of the most recent log for taskID. Ties on
// date go to the later entry in input order.
func latestNote(logs []domain.WorkLog, taskID string) string {
	var best *domain.WorkLog
	for i := range logs {
		w := &logs[i]
		if w.TaskID != taskID {
			continue
		}
		if best == nil || !w.Date.Before(best.Date) {
			best = w
		}
	}
	if best == nil {
		return ""
	}
	return best.Note
}

// Generate builds and renders in one step. Invalid options produce a
// report containing only an error section rather than an error value.
func Generate(state *domain.AppState, opts Options, labels Labels) string {
	r, err := Build(state, opts)
	if err != nil {
		return RenderError(err, labels)
	}
	return Render(r, labels)
}
