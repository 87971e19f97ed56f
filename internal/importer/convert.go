package importer

import (
	"time"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/google/uuid"
)

// ToState converts a validated record into an AppState. Run ValidateRecord
// first; unparseable dates here come back as zero values.
//
// Missing IDs are generated, missing collections become empty, a task
// without a status derives one from its progress, and a missing priority is
// medium.
func ToState(rec *Record, now time.Time) *domain.AppState {
	now = now.UTC().Truncate(time.Second)
	state := domain.NewAppState()

	for _, p := range rec.Projects {
		state.Projects = append(state.Projects, domain.Project{
			ID:        idOrNew(p.ID),
			Name:      p.Name,
			Owner:     p.Owner,
			StartDate: parseOrZero(p.StartDate),
			EndDate:   parseOrZero(p.EndDate),
			Status:    domain.ProjectStatus(domain.CoalesceStr(p.Status, string(domain.ProjectActive))),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	for _, t := range rec.Tasks {
		task := domain.Task{
			ID:           idOrNew(t.ID),
			ProjectID:    t.ProjectID,
			Name:         t.Name,
			Category:     t.Category,
			Assignee:     t.Assignee,
			Notes:        t.Notes,
			PlannedStart: parseOrZero(t.PlannedStart),
			PlannedEnd:   parseOrZero(t.PlannedEnd),
			Progress:     t.Progress,
			Status:       domain.TaskStatus(t.Status),
			Priority:     domain.Priority(domain.CoalesceStr(t.Priority, string(domain.PriorityMedium))),
			DependsOn:    t.DependsOn,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if task.Status == "" {
			task.SetProgress(task.Progress)
		}
		state.Tasks = append(state.Tasks, task)
	}

	for _, w := range rec.WorkLogs {
		state.WorkLogs = append(state.WorkLogs, domain.WorkLog{
			ID:            idOrNew(w.ID),
			TaskID:        w.TaskID,
			Date:          parseOrZero(w.Date),
			Note:          w.WorkNote,
			Hours:         w.Hours,
			ProgressAfter: w.ProgressAfter,
			CreatedAt:     now,
		})
	}

	for _, a := range rec.AdhocTasks {
		state.AdhocTasks = append(state.AdhocTasks, domain.AdhocTask{
			ID:               idOrNew(a.ID),
			Date:             parseOrZero(a.Date),
			Title:            a.Title,
			Detail:           a.Detail,
			Hours:            a.Hours,
			RelatedProjectID: a.RelatedProjectID,
			CreatedAt:        now,
		})
	}

	if p := rec.UIPreferences; p != nil {
		prefs := &state.UIPreferences
		prefs.GanttZoom = domain.GanttZoom(domain.CoalesceStr(p.GanttZoomLevel, string(prefs.GanttZoom)))
		prefs.Theme = domain.CoalesceStr(p.Theme, prefs.Theme)
		if p.DayWidth > 0 {
			prefs.DayWidth = p.DayWidth
		}
	}

	return state
}

// FromState converts state back into the stored record shape. Every
// collection is present, even when empty.
func FromState(state *domain.AppState) *Record {
	rec := &Record{
		Projects:   make([]ProjectRecord, 0, len(state.Projects)),
		Tasks:      make([]TaskRecord, 0, len(state.Tasks)),
		WorkLogs:   make([]WorkLogRecord, 0, len(state.WorkLogs)),
		AdhocTasks: make([]AdhocRecord, 0, len(state.AdhocTasks)),
		UIPreferences: &UIPreferencesRecord{
			GanttZoomLevel: string(state.UIPreferences.GanttZoom),
			Theme:          state.UIPreferences.Theme,
			DayWidth:       state.UIPreferences.DayWidth,
		},
	}
	for _, p := range state.Projects {
		rec.Projects = append(rec.Projects, ProjectRecord{
			ID:        p.ID,
			Name:      p.Name,
			Owner:     p.Owner,
			StartDate: p.StartDate.String(),
			EndDate:   p.EndDate.String(),
			Status:    string(p.Status),
		})
	}
	for _, t := range state.Tasks {
		rec.Tasks = append(rec.Tasks, TaskRecord{
			ID:           t.ID,
			ProjectID:    t.ProjectID,
			Name:         t.Name,
			Category:     t.Category,
			Assignee:     t.Assignee,
			Notes:        t.Notes,
			PlannedStart: t.PlannedStart.String(),
			PlannedEnd:   t.PlannedEnd.String(),
			Progress:     t.Progress,
			Status:       string(t.Status),
			Priority:     string(t.Priority),
			DependsOn:    t.DependsOn,
		})
	}
	for _, w := range state.WorkLogs {
		rec.WorkLogs = append(rec.WorkLogs, WorkLogRecord{
			ID:            w.ID,
			TaskID:        w.TaskID,
			Date:          w.Date.String(),
			WorkNote:      w.Note,
			Hours:         w.Hours,
			ProgressAfter: w.ProgressAfter,
		})
	}
	for _, a := range state.AdhocTasks {
		rec.AdhocTasks = append(rec.AdhocTasks, AdhocRecord{
			ID:               a.ID,
			Date:             a.Date.String(),
			Title:            a.Title,
			Detail:           a.Detail,
			Hours:            a.Hours,
			RelatedProjectID: a.RelatedProjectID,
		})
	}
	return rec
}

// SampleRecord is the starter data a fresh install offers: one project
// with three consecutive tasks starting today.
func SampleRecord(today calendar.Date) *Record {
	day := func(n int) string { return today.AddDays(n).String() }
	return &Record{
		Projects: []ProjectRecord{
			{ID: "p1", Name: "Sample project", Owner: "Owner", StartDate: day(0), EndDate: day(30), Status: "active"},
		},
		Tasks: []TaskRecord{
			{ID: "t1", ProjectID: "p1", Name: "Design UX", PlannedStart: day(0), PlannedEnd: day(5),
				Progress: 40, Status: "in_progress", Priority: "high", Notes: "Gather user journeys"},
			{ID: "t2", ProjectID: "p1", Name: "Build prototype", PlannedStart: day(6), PlannedEnd: day(15),
				Progress: 10, Status: "not_started", Priority: "medium"},
			{ID: "t3", ProjectID: "p1", Name: "QA and fixes", PlannedStart: day(16), PlannedEnd: day(25),
				Progress: 0, Status: "not_started", Priority: "medium"},
		},
		WorkLogs:   []WorkLogRecord{},
		AdhocTasks: []AdhocRecord{},
	}
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func parseOrZero(s string) calendar.Date {
	d, err := calendar.Parse(s)
	if err != nil {
		return calendar.Date{}
	}
	return d
}
