package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a Record.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Record is the stored application record: the shape the browser version
// kept in localStorage. Absent collections decode as nil.
type Record struct {
	Projects      []ProjectRecord      `json:"projects" yaml:"projects"`
	Tasks         []TaskRecord         `json:"tasks" yaml:"tasks"`
	WorkLogs      []WorkLogRecord      `json:"workLogs" yaml:"workLogs"`
	AdhocTasks    []AdhocRecord        `json:"adhocTasks" yaml:"adhocTasks"`
	UIPreferences *UIPreferencesRecord `json:"uiPreferences,omitempty" yaml:"uiPreferences,omitempty"`
}

type ProjectRecord struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Owner     string `json:"owner,omitempty" yaml:"owner,omitempty"`
	StartDate string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Status    string `json:"status,omitempty" yaml:"status,omitempty"`
}

type TaskRecord struct {
	ID           string   `json:"id" yaml:"id"`
	ProjectID    string   `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Name         string   `json:"name" yaml:"name"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	Assignee     string   `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Notes        string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	PlannedStart string   `json:"plannedStart" yaml:"plannedStart"`
	PlannedEnd   string   `json:"plannedEnd" yaml:"plannedEnd"`
	Progress     int      `json:"progress" yaml:"progress"`
	Status       string   `json:"status,omitempty" yaml:"status,omitempty"`
	Priority     string   `json:"priority,omitempty" yaml:"priority,omitempty"`
	DependsOn    []string `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

type WorkLogRecord struct {
	ID            string   `json:"id" yaml:"id"`
	TaskID        string   `json:"taskId" yaml:"taskId"`
	Date          string   `json:"date" yaml:"date"`
	WorkNote      string   `json:"workNote" yaml:"workNote"`
	Hours         *float64 `json:"hours,omitempty" yaml:"hours,omitempty"`
	ProgressAfter *int     `json:"progressAfter,omitempty" yaml:"progressAfter,omitempty"`
}

type AdhocRecord struct {
	ID               string   `json:"id" yaml:"id"`
	Date             string   `json:"date" yaml:"date"`
	Title            string   `json:"title" yaml:"title"`
	Detail           string   `json:"detail,omitempty" yaml:"detail,omitempty"`
	Hours            *float64 `json:"hours,omitempty" yaml:"hours,omitempty"`
	RelatedProjectID string   `json:"relatedProjectId,omitempty" yaml:"relatedProjectId,omitempty"`
}

type UIPreferencesRecord struct {
	GanttZoomLevel string `json:"ganttZoomLevel,omitempty" yaml:"ganttZoomLevel,omitempty"`
	Theme          string `json:"theme,omitempty" yaml:"theme,omitempty"`
	DayWidth       int    `json:"dayWidth,omitempty" yaml:"dayWidth,omitempty"`
}

// FormatForPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// LoadRecord reads and decodes a record file.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return DecodeRecord(bytes.NewReader(data), FormatForPath(path))
}

// DecodeRecord decodes a record from r.
func DecodeRecord(r io.Reader, format Format) (*Record, error) {
	var rec Record
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&rec); err != nil && err != io.EOF {
			return nil, fmt.Errorf("parsing YAML record: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&rec); err != nil {
			return nil, fmt.Errorf("parsing JSON record: %w", err)
		}
	}
	return &rec, nil
}

// EncodeRecord writes rec to w. JSON output is indented.
func EncodeRecord(w io.Writer, rec *Record, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding YAML record: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding JSON record: %w", err)
		}
		return nil
	}
}
