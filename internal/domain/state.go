package domain

// UIPreferences are carried with the state but not interpreted by the engine.
type UIPreferences struct {
	GanttZoom GanttZoom
	Theme     string
	DayWidth  int
}

// DefaultUIPreferences mirrors a freshly initialised store.
func DefaultUIPreferences() UIPreferences {
	return UIPreferences{
		GanttZoom: ZoomDay,
		Theme:     "dark",
		DayWidth:  3,
	}
}

// AppState is the aggregate handed to the engine. Collections keep
// insertion order; the engine never mutates it.
type AppState struct {
	Projects      []Project
	Tasks         []Task
	WorkLogs      []WorkLog
	AdhocTasks    []AdhocTask
	UIPreferences UIPreferences
}

// NewAppState returns an empty state with default preferences.
func NewAppState() *AppState {
	return &AppState{
		Projects:      []Project{},
		Tasks:         []Task{},
		WorkLogs:      []WorkLog{},
		AdhocTasks:    []AdhocTask{},
		UIPreferences: DefaultUIPreferences(),
	}
}

func (s *AppState) ProjectByID(id string) (*Project, bool) {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return &s.Projects[i], true
		}
	}
	return nil, false
}

func (s *AppState) TaskByID(id string) (*Task, bool) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i], true
		}
	}
	return nil, false
}

// ProjectNames maps project ID to name.
func (s *AppState) ProjectNames() map[string]string {
	names := make(map[string]string, len(s.Projects))
	for _, p := range s.Projects {
		names[p.ID] = p.Name
	}
	return names
}

// TasksForProject returns tasks whose ProjectID is id, in order.
func (s *AppState) TasksForProject(id string) []Task {
	var out []Task
	for _, t := range s.Tasks {
		if t.ProjectID == id {
			out = append(out, t)
		}
	}
	return out
}

// LogsForTask returns the task's work logs in input order.
func (s *AppState) LogsForTask(taskID string) []WorkLog {
	var out []WorkLog
	for _, w := range s.WorkLogs {
		if w.TaskID == taskID {
			out = append(out, w)
		}
	}
	return out
}

// DanglingReferences lists every weak reference whose target is missing.
func (s *AppState) DanglingReferences() []DanglingReference {
	projects := make(map[string]bool, len(s.Projects))
	for _, p := range s.Projects {
		projects[p.ID] = true
	}
	tasks := make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		tasks[t.ID] = true
	}

	var refs []DanglingReference
	for _, t := range s.Tasks {
		if t.ProjectID != "" && !projects[t.ProjectID] {
			refs = append(refs, DanglingReference{Kind: RefTaskProject, SourceID: t.ID, TargetID: t.ProjectID})
		}
	}
	for _, w := range s.WorkLogs {
		if !tasks[w.TaskID] {
			refs = append(refs, DanglingReference{Kind: RefWorkLogTask, SourceID: w.ID, TargetID: w.TaskID})
		}
	}
	for _, a := range s.AdhocTasks {
		if a.RelatedProjectID != "" && !projects[a.RelatedProjectID] {
			refs = append(refs, DanglingReference{Kind: RefAdhocProject, SourceID: a.ID, TargetID: a.RelatedProjectID})
		}
	}
	return refs
}
