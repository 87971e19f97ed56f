package importer

import (
	"fmt"

	"github.com/alexanderramin/ganttline/internal/calendar"
	"github.com/alexanderramin/ganttline/internal/domain"
)

// ValidateRecord checks a decoded record before conversion and returns
// every problem found. Dangling references are not errors.
func ValidateRecord(rec *Record) []error {
	var errs []error

	projectIDs := make(map[string]bool)
	for i, p := range rec.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		errs = append(errs, checkID(prefix, p.ID, projectIDs)...)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		start, startErrs := optionalDate(prefix+".startDate", p.StartDate)
		end, endErrs := optionalDate(prefix+".endDate", p.EndDate)
		errs = append(errs, startErrs...)
		errs = append(errs, endErrs...)
		if !start.IsZero() && !end.IsZero() && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.endDate %q is before startDate %q", prefix, p.EndDate, p.StartDate))
		}
		if p.Status != "" {
			if _, err := domain.ParseProjectStatus(p.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, p.Status))
			}
		}
	}

	taskIDs := make(map[string]bool)
	for i, t := range rec.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		errs = append(errs, checkID(prefix, t.ID, taskIDs)...)
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		start, startErrs := requiredDate(prefix+".plannedStart", t.PlannedStart)
		end, endErrs := requiredDate(prefix+".plannedEnd", t.PlannedEnd)
		errs = append(errs, startErrs...)
		errs = append(errs, endErrs...)
		if !start.IsZero() && !end.IsZero() && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.plannedEnd %q is before plannedStart %q", prefix, t.PlannedEnd, t.PlannedStart))
		}
		if t.Progress < 0 || t.Progress > 100 {
			errs = append(errs, fmt.Errorf("%s.progress %d outside 0..100", prefix, t.Progress))
		}
		if t.Status != "" {
			if _, err := domain.ParseTaskStatus(t.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
			}
		}
		if t.Priority != "" {
			if _, err := domain.ParsePriority(t.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, t.Priority))
			}
		}
	}

	logIDs := make(map[string]bool)
	for i, w := range rec.WorkLogs {
		prefix := fmt.Sprintf("workLogs[%d]", i)
		errs = append(errs, checkID(prefix, w.ID, logIDs)...)
		if w.TaskID == "" {
			errs = append(errs, fmt.Errorf("%s.taskId is required", prefix))
		}
		_, dateErrs := requiredDate(prefix+".date", w.Date)
		errs = append(errs, dateErrs...)
		if w.WorkNote == "" {
			errs = append(errs, fmt.Errorf("%s.workNote is required", prefix))
		}
		if w.Hours != nil && *w.Hours < 0 {
			errs = append(errs, fmt.Errorf("%s.hours must not be negative", prefix))
		}
		if w.ProgressAfter != nil && (*w.ProgressAfter < 0 || *w.ProgressAfter > 100) {
			errs = append(errs, fmt.Errorf("%s.progressAfter %d outside 0..100", prefix, *w.ProgressAfter))
		}
	}

	adhocIDs := make(map[string]bool)
	for i, a := range rec.AdhocTasks {
		prefix := fmt.Sprintf("adhocTasks[%d]", i)
		errs = append(errs, checkID(prefix, a.ID, adhocIDs)...)
		_, dateErrs := requiredDate(prefix+".date", a.Date)
		errs = append(errs, dateErrs...)
		if a.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if a.Hours != nil && *a.Hours < 0 {
			errs = append(errs, fmt.Errorf("%s.hours must not be negative", prefix))
		}
	}

	if p := rec.UIPreferences; p != nil {
		if p.GanttZoomLevel != "" && !domain.GanttZoom(p.GanttZoomLevel).Valid() {
			errs = append(errs, fmt.Errorf("uiPreferences.ganttZoomLevel: invalid value %q", p.GanttZoomLevel))
		}
		if p.DayWidth < 0 {
			errs = append(errs, fmt.Errorf("uiPreferences.dayWidth must not be negative"))
		}
	}

	return errs
}

// checkID allows a missing ID (one is generated) but rejects duplicates.
func checkID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return nil
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
	}
	seen[id] = true
	return nil
}

func requiredDate(field, s string) (calendar.Date, []error) {
	if s == "" {
		return calendar.Date{}, []error{fmt.Errorf("%s is required", field)}
	}
	return optionalDate(field, s)
}

func optionalDate(field, s string) (calendar.Date, []error) {
	if s == "" {
		return calendar.Date{}, nil
	}
	d, err := calendar.Parse(s)
	if err != nil {
		return calendar.Date{}, []error{fmt.Errorf("%s: %w", field, err)}
	}
	return d, nil
}
